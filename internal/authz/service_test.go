package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("viewer", "/deals/:deal_id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(1, []string{"viewer"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/deals/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "/api/deals/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("viewer", "/deals", "GET"); err != nil {
		t.Fatalf("grant viewer policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("accountant", "/payments/ledger", "GET"); err != nil {
		t.Fatalf("grant accountant policy failed: %v", err)
	}

	if err := svc.SetUserRoles(2, []string{"viewer"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:viewer" {
		t.Fatalf("roles want [role:viewer], got=%v", roles)
	}

	if err := svc.SetUserRoles(2, []string{"accountant"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:accountant" {
		t.Fatalf("roles want [role:accountant], got=%v", roles)
	}

	allow, err := svc.EnforceUser(2, "/deals", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceUser(2, "/payments/ledger", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/deals/:deal_id", want: "/deals/:deal_id"},
		{in: "/deals/:deal_id", want: "/deals/:deal_id"},
		{in: "deals/stats", want: "/deals/stats"},
		{in: "/api", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:admin": true,
		"role:user":  true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	allow, err := svc.EnforceRole("user", "/deals/7/owners/3", "PUT")
	if err != nil {
		t.Fatalf("enforce user role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected user role allowed on deal subresource")
	}

	allow, err = svc.EnforceRole("user", "/deals/7", "DELETE")
	if err != nil {
		t.Fatalf("enforce deal delete failed: %v", err)
	}
	if allow {
		t.Fatalf("expected user role denied deal delete")
	}

	allow, err = svc.EnforceRole("user", "/users", "GET")
	if err != nil {
		t.Fatalf("enforce user management failed: %v", err)
	}
	if allow {
		t.Fatalf("expected user role denied user management")
	}

	allow, err = svc.EnforceRole("admin", "/users/5/role", "PUT")
	if err != nil {
		t.Fatalf("enforce admin failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected admin allowed everywhere")
	}
}
