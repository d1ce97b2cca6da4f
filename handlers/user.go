package handlers

import (
	"net/http"

	"decorhub/services/user"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes login bookkeeping and role management.
type UserHandler struct {
	Svc user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// Login handles POST /user.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	u, created, err := h.Svc.Login(c.Request.Context(), req, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, u)
}

// GetRole handles GET /user/role/:email.
func (h *UserHandler) GetRole(c *gin.Context) {
	role, err := h.Svc.RoleOf(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// UpdateRole handles PATCH /update-role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	u, err := h.Svc.UpdateRole(c.Request.Context(), in.Email, in.Role, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context(), currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
