package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
)

const bearerPrefix = "Bearer "

// AuthMW wraps the token service and account lookups for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
	users    domain.UserService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, users domain.UserService) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		users:    users,
	}
}

// Extract stores the bearer token of the request, if any. It never rejects.
func (mw *AuthMW) Extract() gin.HandlerFunc {
	return gate(func(rc RequestContext) *rejection {
		mw.extract(rc)
		return nil
	})
}

// Decode verifies a token when one was sent and stores its payload. Requests
// without a valid AUTH token continue anonymously.
func (mw *AuthMW) Decode() gin.HandlerFunc {
	return gate(func(rc RequestContext) *rejection {
		token := mw.extract(rc)
		if token == "" {
			return nil
		}
		res := mw.tokenSvc.Verify(token)
		if res.Status && res.Data != nil && res.Data.Type == domain.TokenAuth {
			rc.Set(PayloadKey, res.Data)
		}
		return nil
	})
}

// Verify requires a valid AUTH token
func (mw *AuthMW) Verify() gin.HandlerFunc {
	return gate(mw.verify)
}

func (mw *AuthMW) verify(rc RequestContext) *rejection {
	token := mw.extract(rc)
	if token == "" {
		return &rejection{status: http.StatusUnauthorized, message: domain.MsgNoToken}
	}

	res := mw.tokenSvc.Verify(token)
	if res.Failed() || res.Data == nil {
		return &rejection{status: http.StatusForbidden, message: res.Message}
	}
	if res.Data.Type != domain.TokenAuth {
		return &rejection{status: http.StatusForbidden, message: domain.MsgInvalidToken}
	}

	rc.Set(PayloadKey, res.Data)
	return nil
}

// Roles lets the request through only when the payload role is one of roles
func (mw *AuthMW) Roles(roles ...domain.Role) gin.HandlerFunc {
	return gate(func(rc RequestContext) *rejection {
		if hasRole(payloadFrom(rc), roles) {
			return nil
		}
		return notAuthorized()
	})
}

// Owner lets the request through only when the path param names the caller
func (mw *AuthMW) Owner(param string) gin.HandlerFunc {
	return mw.OwnerOr(param)
}

// OwnerOr lets the owner through, and any caller holding one of roles
func (mw *AuthMW) OwnerOr(param string, roles ...domain.Role) gin.HandlerFunc {
	return gate(func(rc RequestContext) *rejection {
		payload := payloadFrom(rc)
		if isOwner(payload, rc.GetPathParam(param)) || hasRole(payload, roles) {
			return nil
		}
		return notAuthorized()
	})
}

// Active re-reads the caller's account so a suspension takes effect before
// the token expires.
func (mw *AuthMW) Active() gin.HandlerFunc {
	return gate(func(rc RequestContext) *rejection {
		payload := payloadFrom(rc)
		if payload == nil {
			return notAuthorized()
		}

		res := mw.users.GetByID(rc.Context(), payload.UserID)
		if res.Failed() {
			return &rejection{status: http.StatusForbidden, message: res.Message}
		}
		switch res.Data.Status {
		case domain.StatusActive:
			return nil
		case domain.StatusSuspended:
			return &rejection{status: http.StatusForbidden, message: domain.MsgUserSuspended}
		default:
			return &rejection{status: http.StatusForbidden, message: domain.MsgUserNotActive}
		}
	})
}

func (mw *AuthMW) extract(rc RequestContext) string {
	if token := tokenFrom(rc); token != "" {
		return token
	}
	header := rc.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token != "" {
		rc.Set(TokenKey, token)
	}
	return token
}

func hasRole(payload *domain.TokenPayload, roles []domain.Role) bool {
	if payload == nil {
		return false
	}
	for _, r := range roles {
		if payload.Role.Is(r) {
			return true
		}
	}
	return false
}

func isOwner(payload *domain.TokenPayload, id string) bool {
	return payload != nil && id != "" && payload.UserID == id
}

func notAuthorized() *rejection {
	return &rejection{status: http.StatusForbidden, message: domain.MsgNotAuthorized}
}
