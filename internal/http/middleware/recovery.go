package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

// MsgInternalError is the body message of a recovered panic
const MsgInternalError = "Internal server error"

// Recovery turns a panic in any later handler into a logged 500
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, domain.Failure(MsgInternalError))
	})
}
