package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
// admin 拥有全部接口；user 不能删除交易，也不能访问用户管理与操作日志。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "admin",
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role: "user",
			Policies: []Policy{
				{Object: "/deals", Action: "GET"},
				{Object: "/deals", Action: "POST"},
				{Object: "/deals/stats", Action: "GET"},
				{Object: "/deals/:deal_id", Action: "GET"},
				{Object: "/deals/:deal_id", Action: "PUT"},
				{Object: "/deals/:deal_id/*", Action: "*"},
				{Object: "/payments/*", Action: "*"},
				{Object: "/documents/:document_id", Action: "DELETE"},
				{Object: "/proofs/:proof_id", Action: "DELETE"},
				{Object: "/reminders", Action: "GET"},
				{Object: "/auth/me", Action: "GET"},
				{Object: "/auth/change-password", Action: "POST"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
