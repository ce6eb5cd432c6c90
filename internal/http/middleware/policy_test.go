package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/mocks"
	"go.uber.org/zap"
)

func TestPolicyMW_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		header         string
		checkFunc      func(role, resource, action string) (bool, error)
		expectedStatus int
	}{
		{
			name:           "allowed",
			header:         "Bearer AUTH:a1:ADMIN",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "denied",
			header:         "Bearer AUTH:u1:USER",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "enforcer error",
			header: "Bearer AUTH:a1:ADMIN",
			checkFunc: func(string, string, string) (bool, error) {
				return false, errors.New("bad matcher")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policies := mocks.NewMockPolicyService()
			var got []string
			policies.CheckPermissionFunc = func(role, resource, action string) (bool, error) {
				got = []string{role, resource, action}
				if tt.checkFunc != nil {
					return tt.checkFunc(role, resource, action)
				}
				return role == "role_ADMIN", nil
			}
			auth := NewAuthMW(mocks.NewMockTokenService(), mocks.NewMockUserService())
			pmw := NewPolicyMW(policies, zap.NewNop())

			r := gin.New()
			r.PATCH("/admin/users/:id/suspend", auth.Verify(), pmw.Enforce(), func(c *gin.Context) {
				c.JSON(http.StatusOK, domain.Success("ok"))
			})

			req := httptest.NewRequest(http.MethodPatch, "/admin/users/u9/suspend", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "/admin/users/u9/suspend", got[1])
			assert.Equal(t, http.MethodPatch, got[2])
		})
	}
}

func TestPolicyMW_NoPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pmw := NewPolicyMW(mocks.NewMockPolicyService(), zap.NewNop())

	r := gin.New()
	r.GET("/admin/users", pmw.Enforce(), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
