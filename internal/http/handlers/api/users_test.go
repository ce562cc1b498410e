package api

import (
	"testing"
	"time"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
)

func TestUserViewFields(t *testing.T) {
	lastLogin := time.Date(2025, 9, 5, 10, 0, 0, 0, time.UTC)
	user := &models.User{
		Username:    "ramesh",
		FullName:    "Ramesh Patil",
		Role:        constants.RoleUser,
		Status:      constants.UserStatusActive,
		LastLoginAt: &lastLogin,
	}

	view := userView(user)
	if view["username"] != "ramesh" || view["full_name"] != "Ramesh Patil" {
		t.Fatalf("view identity fields mismatch: %+v", view)
	}
	got, ok := view["last_login"].(*time.Time)
	if !ok || got == nil || !got.Equal(lastLogin) {
		t.Fatalf("last_login must carry the login timestamp, got %v", view["last_login"])
	}

	user.LastLoginAt = nil
	view = userView(user)
	if got, ok := view["last_login"].(*time.Time); !ok || got != nil {
		t.Fatalf("never-logged-in user must expose nil last_login, got %v", view["last_login"])
	}
}
