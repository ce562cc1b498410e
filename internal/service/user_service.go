package service

import (
	"context"
	"strings"

	"github.com/landdesk/internal/cache"
	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"
)

// UserService 用户管理服务（管理员操作）
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
}

// NewUserService 创建用户管理服务实例
func NewUserService(userRepo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// ListUsers 分页查询用户
func (s *UserService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// GetUser 获取用户
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// CreateUser 管理员创建用户
func (s *UserService) CreateUser(input RegisterInput) (*models.User, error) {
	return s.auth.Register(input)
}

// UpdateRole 调整用户角色
func (s *UserService) UpdateRole(id uint, role string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	role = strings.ToLower(strings.TrimSpace(role))
	if role != constants.RoleAdmin {
		role = constants.RoleUser
	}
	user.Role = role
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	// 角色变化即作废存量令牌
	if err := s.userRepo.BumpTokenVersion(id); err != nil {
		return nil, err
	}
	_ = cache.DelUserAuthState(context.Background(), id)
	return user, nil
}

// SetStatus 启用/停用用户
func (s *UserService) SetStatus(id uint, status string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.UserStatusDisabled {
		status = constants.UserStatusActive
	}
	user.Status = status
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	if status == constants.UserStatusDisabled {
		if err := s.userRepo.BumpTokenVersion(id); err != nil {
			return nil, err
		}
	}
	_ = cache.DelUserAuthState(context.Background(), id)
	return user, nil
}

// ResetPassword 管理员重置用户密码
func (s *UserService) ResetPassword(id uint, newPassword string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(id, hashed); err != nil {
		return err
	}
	if err := s.userRepo.BumpTokenVersion(id); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), id)
	return nil
}
