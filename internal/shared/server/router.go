package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "vault-backend/internal/auth"
	"vault-backend/internal/documents"
	"vault-backend/internal/shared/config"
	"vault-backend/internal/shared/server/middleware"
	"vault-backend/internal/shared/server/respond"
	"vault-backend/internal/sharing"
	"vault-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	SharingHandler  *sharing.Handler
	UserHandler     *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 0.5, Burst: 5},
				"REDEEM": {Rate: 0.2, Burst: 5},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.SharingHandler != nil {
		deps.SharingHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup throttles uploads and invite guessing; everything else is
// unlimited.
func rateLimitGroup(c *gin.Context) string {
	switch {
	case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/documents":
		return "UPLOAD"
	case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/invite/redeem":
		return "REDEEM"
	default:
		return ""
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
