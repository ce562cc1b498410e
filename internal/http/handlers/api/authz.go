package api

import (
	"net/http"

	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListAuthzRoles 列出全部角色
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"roles": roles})
}

type authzRoleRequest struct {
	Role string `json:"role"`
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Message(c, http.StatusCreated, "Role created successfully", gin.H{"role": role})
}

// DeleteAuthzRole 删除角色及其策略
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := c.Param("role")
	if err := h.AuthzService.DeleteRole(role); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Message(c, http.StatusOK, "Role deleted successfully", gin.H{"role": role})
}

// GetAuthzRolePolicies 查询角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.OK(c, gin.H{"policies": policies})
}

type authzPolicyRequest struct {
	Role   string `json:"role"`
	Object string `json:"object"`
	Action string `json:"action"`
}

// GrantAuthzPolicy 为角色授予策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Message(c, http.StatusOK, "Policy granted", nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Message(c, http.StatusOK, "Policy revoked", nil)
}

// GetUserAuthzRoles 查询用户挂接的策略角色
func (h *Handler) GetUserAuthzRoles(c *gin.Context) {
	userID, ok := shared.ParseUintParam(c, "user_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.OK(c, gin.H{"roles": roles})
}

type setUserRolesRequest struct {
	Roles []string `json:"roles"`
}

// SetUserAuthzRoles 覆盖设置用户的策略角色
func (h *Handler) SetUserAuthzRoles(c *gin.Context) {
	userID, ok := shared.ParseUintParam(c, "user_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}
	var req setUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.AuthzService.SetUserRoles(userID, req.Roles); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Message(c, http.StatusOK, "User roles updated", gin.H{"user_id": userID})
}
