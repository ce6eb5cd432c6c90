package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/middleware"
)

// UserHandlers serves account reads and changes
type UserHandlers struct {
	users domain.UserService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(users domain.UserService) *UserHandlers {
	return &UserHandlers{users: users}
}

// UpdateUserRequest is a partial account update; absent fields stay untouched
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Status   *string `json:"status"`
	Role     *string `json:"role"`
}

func (r UpdateUserRequest) patch() domain.AccountPatch {
	p := domain.AccountPatch{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.Status != nil {
		s := domain.AccountStatus(*r.Status)
		p.Status = &s
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		p.Role = &role
	}
	return p
}

// Get returns one account
func (h *UserHandlers) Get(c *gin.Context) {
	respondData(c, h.users.GetByID(c.Request.Context(), c.Param("id")))
}

// Update applies a partial update. Only admins may change status or role.
func (h *UserHandlers) Update(c *gin.Context) {
	var req UpdateUserRequest
	if !bind(c, &req) {
		return
	}

	payload := middleware.Payload(c)
	isAdmin := payload != nil && payload.Role.Is(domain.RoleAdmin)
	if !isAdmin && (req.Status != nil || req.Role != nil) {
		forbid(c)
		return
	}

	respondData(c, h.users.Update(c.Request.Context(), c.Param("id"), req.patch()))
}

// Delete marks an account DELETED
func (h *UserHandlers) Delete(c *gin.Context) {
	respondData(c, h.users.Delete(c.Request.Context(), c.Param("id")))
}

// List returns every non-deleted account (admin)
func (h *UserHandlers) List(c *gin.Context) {
	respondData(c, h.users.List(c.Request.Context()))
}

// Activate marks an account ACTIVE (admin)
func (h *UserHandlers) Activate(c *gin.Context) {
	respondData(c, h.users.Activate(c.Request.Context(), c.Param("id")))
}

// Suspend marks an account SUSPENDED (admin)
func (h *UserHandlers) Suspend(c *gin.Context) {
	respondData(c, h.users.Suspend(c.Request.Context(), c.Param("id")))
}

// Purge removes an account of any status for good (admin)
func (h *UserHandlers) Purge(c *gin.Context) {
	respondData(c, h.users.Purge(c.Request.Context(), c.Param("id")))
}
