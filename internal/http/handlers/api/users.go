package api

import (
	"net/http"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
)

func userView(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"full_name":  user.FullName,
		"role":       user.Role,
		"status":     user.Status,
		"last_login": user.LastLoginAt,
		"created_at": user.CreatedAt,
	}
}

// ListUsers 管理员查询用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	users, total, err := h.UserService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	response.OK(c, gin.H{
		"users":      views,
		"pagination": response.NewPagination(page, pageSize, total),
	})
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// CreateUser 管理员创建用户
func (h *Handler) CreateUser(c *gin.Context) {
	actorID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := h.UserService.CreateUser(service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     actorID,
		Action:     constants.ActivityActionCreate,
		EntityType: "user",
		EntityID:   user.ID,
		EntityName: user.Username,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "User created successfully", gin.H{"user": userView(user)})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole 管理员调整用户角色
func (h *Handler) UpdateUserRole(c *gin.Context) {
	userID, ok := shared.ParseUintParam(c, "user_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}
	actorID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.UpdateRole(userID, req.Role)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     actorID,
		Action:     constants.ActivityActionUpdate,
		EntityType: "user",
		EntityID:   user.ID,
		EntityName: user.Username,
		Changes:    gin.H{"role": user.Role},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "User role updated", gin.H{"user": userView(user)})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateUserStatus 管理员启用或禁用用户
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	userID, ok := shared.ParseUintParam(c, "user_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}
	actorID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.SetStatus(userID, req.Status)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     actorID,
		Action:     constants.ActivityActionUpdate,
		EntityType: "user",
		EntityID:   user.ID,
		EntityName: user.Username,
		Changes:    gin.H{"status": user.Status},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "User status updated", gin.H{"user": userView(user)})
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ResetUserPassword 管理员重置用户密码
func (h *Handler) ResetUserPassword(c *gin.Context) {
	userID, ok := shared.ParseUintParam(c, "user_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}
	actorID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.UserService.ResetPassword(userID, req.NewPassword); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     actorID,
		Action:     constants.ActivityActionUpdate,
		EntityType: "user",
		EntityID:   userID,
		Changes:    gin.H{"password_reset": true},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Password reset successfully", gin.H{"user_id": userID})
}
