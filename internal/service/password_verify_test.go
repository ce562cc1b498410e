package service

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

func TestVerifyStoredPasswordBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash failed: %v", err)
	}
	if !VerifyStoredPassword("s3cret!", string(hash)) {
		t.Fatalf("bcrypt verify should pass")
	}
	if VerifyStoredPassword("wrong", string(hash)) {
		t.Fatalf("bcrypt verify should fail for wrong password")
	}
}

func TestVerifyStoredPasswordWerkzeugPBKDF2(t *testing.T) {
	derived := pbkdf2.Key([]byte("s3cret!"), []byte("salty"), 260000, sha256.Size, sha256.New)
	stored := fmt.Sprintf("pbkdf2:sha256:260000$salty$%s", hex.EncodeToString(derived))

	if !VerifyStoredPassword("s3cret!", stored) {
		t.Fatalf("pbkdf2 verify should pass")
	}
	if VerifyStoredPassword("wrong", stored) {
		t.Fatalf("pbkdf2 verify should fail for wrong password")
	}
}

func TestVerifyStoredPasswordWerkzeugScrypt(t *testing.T) {
	derived, err := scrypt.Key([]byte("s3cret!"), []byte("salty"), 16384, 8, 1, 64)
	if err != nil {
		t.Fatalf("scrypt derive failed: %v", err)
	}
	stored := fmt.Sprintf("scrypt:16384:8:1$salty$%s", hex.EncodeToString(derived))

	if !VerifyStoredPassword("s3cret!", stored) {
		t.Fatalf("scrypt verify should pass")
	}
	if VerifyStoredPassword("wrong", stored) {
		t.Fatalf("scrypt verify should fail for wrong password")
	}
}

func TestVerifyStoredPasswordLegacyHMAC(t *testing.T) {
	mac := hmac.New(sha1.New, []byte("salty"))
	mac.Write([]byte("s3cret!"))
	stored := fmt.Sprintf("sha1$salty$%s", hex.EncodeToString(mac.Sum(nil)))

	if !VerifyStoredPassword("s3cret!", stored) {
		t.Fatalf("legacy hmac verify should pass")
	}
	if VerifyStoredPassword("wrong", stored) {
		t.Fatalf("legacy hmac verify should fail for wrong password")
	}
}

func TestVerifyStoredPasswordMD5(t *testing.T) {
	sum := md5.Sum([]byte("s3cret!"))
	stored := hex.EncodeToString(sum[:])

	if !VerifyStoredPassword("s3cret!", stored) {
		t.Fatalf("md5 verify should pass")
	}
	if VerifyStoredPassword("wrong", stored) {
		t.Fatalf("md5 verify should fail for wrong password")
	}
}

func TestVerifyStoredPasswordPlaintext(t *testing.T) {
	if !VerifyStoredPassword("s3cret!", "s3cret!") {
		t.Fatalf("plaintext verify should pass")
	}
	if VerifyStoredPassword("wrong", "s3cret!") {
		t.Fatalf("plaintext verify should fail for wrong password")
	}
}

func TestVerifyStoredPasswordEmptyInputs(t *testing.T) {
	if VerifyStoredPassword("", "anything") {
		t.Fatalf("empty password should never verify")
	}
	if VerifyStoredPassword("anything", "") {
		t.Fatalf("empty stored hash should never verify")
	}
}
