package service

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"gorm.io/gorm"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret"
	cfg.JWT.ExpireHours = 1
	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, username, storedPassword, status string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Password: storedPassword,
		FullName: "Test User",
		Role:     constants.RoleUser,
		Status:   status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return user
}

func TestLoginRehashesLegacyPassword(t *testing.T) {
	svc, db := newAuthServiceForTest(t)
	sum := md5.Sum([]byte("legacy-pass"))
	seedUser(t, db, "ramesh", hex.EncodeToString(sum[:]), constants.UserStatusActive)

	user, token, _, err := svc.Login("ramesh", "legacy-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("token must be issued")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("last login must be stamped")
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !strings.HasPrefix(reloaded.Password, "$2a$") && !strings.HasPrefix(reloaded.Password, "$2b$") {
		t.Fatalf("legacy password should be upgraded to bcrypt, got %q", reloaded.Password)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.Username != "ramesh" || claims.UserID != user.ID {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, db := newAuthServiceForTest(t)
	seedUser(t, db, "active", "plain-pass", constants.UserStatusActive)
	seedUser(t, db, "disabled", "plain-pass", constants.UserStatusDisabled)

	if _, _, _, err := svc.Login("active", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "plain-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("disabled", "plain-pass"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
	if _, _, _, err := svc.Login("", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty credentials want ErrInvalidCredentials got %v", err)
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	user, err := svc.Register(RegisterInput{Username: "  newuser ", Password: "pass-123", Role: "superhero"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Username != "newuser" {
		t.Fatalf("username should be trimmed, got %q", user.Username)
	}
	if user.Role != constants.RoleUser {
		t.Fatalf("unknown role should fall back to user, got %q", user.Role)
	}
	if !strings.HasPrefix(user.Password, "$2a$") && !strings.HasPrefix(user.Password, "$2b$") {
		t.Fatalf("password must be stored as bcrypt")
	}

	if _, err := svc.Register(RegisterInput{Username: "newuser", Password: "other"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username want ErrUsernameTaken got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, db := newAuthServiceForTest(t)
	user, err := svc.Register(RegisterInput{Username: "changer", Password: "old-pass"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-old", "new-pass"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}

	if err := svc.ChangePassword(user.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version should bump: was %d now %d", user.TokenVersion, reloaded.TokenVersion)
	}

	if _, _, _, err := svc.Login("changer", "old-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should stop working, got %v", err)
	}
	if _, _, _, err := svc.Login("changer", "new-pass"); err != nil {
		t.Fatalf("new password login failed: %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true}
	svc := NewAuthService(cfg, nil)

	if err := svc.ValidatePassword("short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword got %v", err)
	}
	if err := svc.ValidatePassword("longenough"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("missing digit want ErrWeakPassword got %v", err)
	}
	if err := svc.ValidatePassword("longenough1"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
}
