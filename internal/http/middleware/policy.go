package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/services"
	"go.uber.org/zap"
)

// PolicyMW enforces casbin route policies for the caller's role
type PolicyMW struct {
	policies domain.PolicyService
	logger   *zap.Logger
}

// NewPolicyMW creates new policy middleware wrapper
func NewPolicyMW(policies domain.PolicyService, logger *zap.Logger) *PolicyMW {
	return &PolicyMW{policies: policies, logger: logger}
}

// Enforce checks (role_<ROLE>, path, method) against the loaded policies.
// It runs after AuthMW.Verify.
func (mw *PolicyMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := Payload(c)
		if payload == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, domain.Failure(domain.MsgNotAuthorized))
			return
		}

		subject := services.RoleSubject(payload.Role)
		path := c.Request.URL.Path
		allowed, err := mw.policies.CheckPermission(subject, path, c.Request.Method)
		if err != nil {
			mw.logger.Error("policy check failed",
				zap.String("subject", subject),
				zap.String("path", path),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, domain.Failure(domain.MsgGeneric))
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, domain.Failure(domain.MsgNotAuthorized))
			return
		}
		c.Next()
	}
}
