package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
)

// Locals keys shared between middleware and handlers
const (
	TokenKey   = "token"
	PayloadKey = "payload"
)

// RequestContext is the part of an HTTP request the auth middleware needs
type RequestContext interface {
	Context() context.Context
	GetHeader(name string) string
	GetPathParam(name string) string
	Get(key string) (any, bool)
	Set(key string, value any)
}

// GinContextAdapter adapts a gin context to RequestContext
type GinContextAdapter struct {
	ctx *gin.Context
}

// NewGinContextAdapter wraps c
func NewGinContextAdapter(c *gin.Context) *GinContextAdapter {
	return &GinContextAdapter{ctx: c}
}

func (g *GinContextAdapter) Context() context.Context { return g.ctx.Request.Context() }

func (g *GinContextAdapter) GetHeader(name string) string { return g.ctx.GetHeader(name) }

func (g *GinContextAdapter) GetPathParam(name string) string { return g.ctx.Param(name) }

func (g *GinContextAdapter) Get(key string) (any, bool) { return g.ctx.Get(key) }

func (g *GinContextAdapter) Set(key string, value any) { g.ctx.Set(key, value) }

// rejection stops the chain with an HTTP status and a failure envelope
type rejection struct {
	status  int
	message string
}

// gate turns a check over RequestContext into gin middleware
func gate(check func(rc RequestContext) *rejection) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r := check(NewGinContextAdapter(c)); r != nil {
			c.AbortWithStatusJSON(r.status, domain.Failure(r.message))
			return
		}
		c.Next()
	}
}

// tokenFrom returns the raw token stored by Extract
func tokenFrom(rc RequestContext) string {
	if v, ok := rc.Get(TokenKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// payloadFrom returns the payload stored by Decode or Verify
func payloadFrom(rc RequestContext) *domain.TokenPayload {
	if v, ok := rc.Get(PayloadKey); ok {
		if p, ok := v.(*domain.TokenPayload); ok {
			return p
		}
	}
	return nil
}

// Payload returns the verified token payload of the request, or nil for
// anonymous requests.
func Payload(c *gin.Context) *domain.TokenPayload {
	return payloadFrom(NewGinContextAdapter(c))
}
