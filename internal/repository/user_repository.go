package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(user *models.User) error
	Save(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List(filter UserListFilter) ([]models.User, int64, error)
	UpdatePassword(id uint, password string) error
	BumpTokenVersion(id uint) error
	UpdateLastLogin(id uint, at time.Time) error
	NamesByIDs(ids []uint) (map[uint]string, error)
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Save 保存用户
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据登录名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}
	var user models.User
	result := r.db.Where("username = ?", username).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &user, nil
}

// List 分页查询用户列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR full_name LIKE ?", like, like)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id asc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdatePassword 更新用户密码
func (r *GormUserRepository) UpdatePassword(id uint, password string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password", password).Error
}

// BumpTokenVersion 递增 Token 版本使存量令牌失效
func (r *GormUserRepository) BumpTokenVersion(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *GormUserRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// NamesByIDs 批量获取用户姓名
func (r *GormUserRepository) NamesByIDs(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var users []models.User
	if err := r.db.Select("id, username, full_name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, user := range users {
		name := user.FullName
		if name == "" {
			name = user.Username
		}
		names[user.ID] = name
	}
	return names, nil
}
