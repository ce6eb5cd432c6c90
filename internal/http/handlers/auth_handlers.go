package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	users   domain.UserService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, users domain.UserService) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		users:   users,
	}
}

// LoginRequest represents login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
}

// SignUpRequest represents registration request
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
}

// VerifyRequest carries a VERIFY token
type VerifyRequest struct {
	Token string `json:"token"`
}

// ResetPasswordRequest carries a RESET token and the new password
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}
	respondData(c, h.authSvc.Login(c.Request.Context(), req.Username, req.Password, req.Captcha))
}

// SignUp handles user registration
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if !bind(c, &req) {
		return
	}
	respond(c, h.authSvc.SignUp(c.Request.Context(), req.Username, req.Email, req.Password, req.Captcha))
}

// SendVerification mails a new verification link to a PASSIVE account
func (h *AuthHandlers) SendVerification(c *gin.Context) {
	respond(c, h.authSvc.SendVerification(c.Request.Context(), c.Param("email")))
}

// Verify activates the account named by a VERIFY token. The token comes from
// the JSON body, or from the query string when the emailed link is followed.
func (h *AuthHandlers) Verify(c *gin.Context) {
	var req VerifyRequest
	if c.Request.Method == http.MethodGet {
		req.Token = c.Query("token")
	} else if !bind(c, &req) {
		return
	}
	respond(c, h.authSvc.Verify(c.Request.Context(), req.Token))
}

// SendPasswordReset mails a password reset link
func (h *AuthHandlers) SendPasswordReset(c *gin.Context) {
	respond(c, h.authSvc.SendPasswordReset(c.Request.Context(), c.Param("email")))
}

// ResetPassword sets a new password using a RESET token
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bind(c, &req) {
		return
	}
	respond(c, h.authSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword))
}

// Me returns the caller's account (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	payload := middleware.Payload(c)
	if payload == nil {
		forbid(c)
		return
	}
	respondData(c, h.users.GetByID(c.Request.Context(), payload.UserID))
}
