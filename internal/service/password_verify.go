package service

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// passwordVerifier 单一密码格式校验策略
type passwordVerifier struct {
	name    string
	matches func(stored string) bool
	verify  func(password, stored string) bool
}

// passwordVerifiers 按优先级排列的校验策略：
// bcrypt → Werkzeug 系（pbkdf2/sha1/sha256/scrypt）→ 裸 MD5 → 明文。
// 存量库中四种格式混存，命中任意一种即视为通过。
var passwordVerifiers = []passwordVerifier{
	{
		name: "bcrypt",
		matches: func(stored string) bool {
			return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$")
		},
		verify: func(password, stored string) bool {
			return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
		},
	},
	{
		name: "werkzeug",
		matches: func(stored string) bool {
			return strings.HasPrefix(stored, "pbkdf2:") ||
				strings.HasPrefix(stored, "scrypt:") ||
				strings.HasPrefix(stored, "sha1$") ||
				strings.HasPrefix(stored, "sha256$")
		},
		verify: verifyWerkzeugHash,
	},
	{
		name: "md5",
		matches: func(stored string) bool {
			if len(stored) != 32 {
				return false
			}
			_, err := hex.DecodeString(strings.ToLower(stored))
			return err == nil
		},
		verify: func(password, stored string) bool {
			sum := md5.Sum([]byte(password))
			return hex.EncodeToString(sum[:]) == strings.ToLower(stored)
		},
	},
	{
		name:    "plaintext",
		matches: func(string) bool { return true },
		verify: func(password, stored string) bool {
			return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
		},
	},
}

// VerifyStoredPassword 逐个尝试匹配的策略，任一通过即成功
func VerifyStoredPassword(password, stored string) bool {
	stored = strings.TrimSpace(stored)
	if password == "" || stored == "" {
		return false
	}
	for _, v := range passwordVerifiers {
		if !v.matches(stored) {
			continue
		}
		if v.verify(password, stored) {
			return true
		}
	}
	return false
}

// verifyWerkzeugHash 校验 Werkzeug 的 method$salt$hash 格式
// 新式：pbkdf2:sha256:260000$salt$hex、scrypt:32768:8:1$salt$hex
// 旧式：sha1$salt$hex（HMAC，salt 为 key）
func verifyWerkzeugHash(password, stored string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, expected := parts[0], parts[1], strings.ToLower(parts[2])

	switch {
	case strings.HasPrefix(method, "pbkdf2:"):
		spec := strings.Split(method, ":")
		if len(spec) < 2 {
			return false
		}
		iterations := 260000
		if len(spec) >= 3 {
			n, err := strconv.Atoi(spec[2])
			if err != nil {
				return false
			}
			iterations = n
		}
		var newHash func() hash.Hash
		var size int
		switch spec[1] {
		case "sha1":
			newHash, size = sha1.New, sha1.Size
		case "sha256":
			newHash, size = sha256.New, sha256.Size
		default:
			return false
		}
		derived := pbkdf2.Key([]byte(password), []byte(salt), iterations, size, newHash)
		return hex.EncodeToString(derived) == expected

	case strings.HasPrefix(method, "scrypt:"):
		spec := strings.Split(method, ":")
		if len(spec) != 4 {
			return false
		}
		n, err1 := strconv.Atoi(spec[1])
		r, err2 := strconv.Atoi(spec[2])
		p, err3 := strconv.Atoi(spec[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return false
		}
		derived, err := scrypt.Key([]byte(password), []byte(salt), n, r, p, 64)
		if err != nil {
			return false
		}
		return hex.EncodeToString(derived) == expected

	case method == "sha1":
		mac := hmac.New(sha1.New, []byte(salt))
		mac.Write([]byte(password))
		return hex.EncodeToString(mac.Sum(nil)) == expected

	case method == "sha256":
		mac := hmac.New(sha256.New, []byte(salt))
		mac.Write([]byte(password))
		return hex.EncodeToString(mac.Sum(nil)) == expected
	}

	return false
}
