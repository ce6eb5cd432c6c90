package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/handlers"
	"github.com/you/blogsvc/internal/http/middleware"
	"github.com/you/blogsvc/internal/metrics"
	"go.uber.org/zap"
)

// Handlers groups everything BuildRouter mounts
type Handlers struct {
	Auth     *handlers.AuthHandlers
	Users    *handlers.UserHandlers
	Posts    *handlers.PostHandlers
	Policies *handlers.PolicyHandlers
}

func BuildRouter(h Handlers, authmw *middleware.AuthMW, policymw *middleware.PolicyMW, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger), middleware.Metrics())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, domain.Failure(domain.MsgNotFound))
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/signUp", h.Auth.SignUp)
	auth.GET("/sendVerification/:email", h.Auth.SendVerification)
	auth.POST("/verify", h.Auth.Verify)
	auth.GET("/verify", h.Auth.Verify)
	auth.GET("/sendPasswordReset/:email", h.Auth.SendPasswordReset)
	auth.POST("/resetPassword", h.Auth.ResetPassword)
	auth.GET("/me", authmw.Verify(), h.Auth.Me)

	// public reads; a signed-in viewer also sees their own drafts
	r.GET("/posts", authmw.Decode(), h.Posts.List)
	r.GET("/posts/:id", authmw.Decode(), h.Posts.Get)
	r.GET("/users/:id/posts", authmw.Decode(), h.Posts.ListByOwner)

	// writes re-read the caller's status; the token only carries a snapshot
	posts := r.Group("/posts", authmw.Verify())
	posts.POST("", authmw.Active(), h.Posts.Create)
	posts.PATCH("/:id", authmw.Active(), h.Posts.Update)
	posts.DELETE("/:id", authmw.Active(), h.Posts.Delete)

	users := r.Group("/users/:id", authmw.Verify(), authmw.OwnerOr("id", domain.RoleAdmin))
	users.GET("", h.Users.Get)
	users.PATCH("", authmw.Active(), h.Users.Update)
	users.DELETE("", authmw.Active(), h.Users.Delete)

	adm := r.Group("/admin", authmw.Verify(), authmw.Roles(domain.RoleAdmin), policymw.Enforce())
	adm.GET("/users", h.Users.List)
	adm.PATCH("/users/:id/activate", h.Users.Activate)
	adm.PATCH("/users/:id/suspend", h.Users.Suspend)
	adm.DELETE("/users/:id/purge", h.Users.Purge)
	adm.GET("/policies", h.Policies.List)
	adm.POST("/policies", h.Policies.Add)
	adm.DELETE("/policies", h.Policies.Remove)

	return r
}
