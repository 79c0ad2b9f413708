package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-critiquer/internal/auth"
	"resume-critiquer/internal/critiques"
	"resume-critiquer/internal/extractions"
	"resume-critiquer/internal/shared/config"
	"resume-critiquer/internal/shared/metrics"
	"resume-critiquer/internal/shared/server/middleware"
	"resume-critiquer/internal/shared/server/respond"
)

// RouterDeps carries the handlers wired into the router.
type RouterDeps struct {
	Config            config.Config
	CritiqueHandler   *critiques.Handler
	ExtractionHandler *extractions.Handler
	GoogleAuth        *googleauth.GoogleService
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
		middleware.RateLimit(rateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.CritiqueHandler != nil {
		deps.CritiqueHandler.RegisterRoutes(api)
	}
	if deps.ExtractionHandler != nil {
		deps.ExtractionHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimits keeps the LLM-backed critique route on a tighter budget than the
// rest of the API.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost {
				switch c.FullPath() {
				case "/api/v1/critiques":
					return "CRITIQUE"
				case "/api/v1/extractions":
					return "EXTRACT"
				}
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":  {Rate: 5, Burst: 20},
			"CRITIQUE": {Rate: 0.2, Burst: 3},
			"EXTRACT":  {Rate: 1, Burst: 5},
		},
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
