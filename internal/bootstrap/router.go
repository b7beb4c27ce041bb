package bootstrap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"intake-backend/internal/intake"
	"intake-backend/internal/schema"
	"intake-backend/internal/shared/config"
	"intake-backend/internal/shared/server/middleware"
	"intake-backend/internal/shared/server/respond"
	"intake-backend/internal/students"
	"intake-backend/internal/uploads"
)

// Handlers groups the route registrars so tests can assemble a router
// around in-memory repositories and a stub extractor.
type Handlers struct {
	Intake   *intake.Handler
	Students *students.Handler
	Uploads  *uploads.Handler
	Schemas  *schema.Handler
}

const processGroup = "PROCESS"

// NewRouter builds the gin engine with the middleware chain and all routes.
func NewRouter(cfg config.Config, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				processGroup: {Rate: rate.Limit(cfg.ExtractRate * 4), Burst: cfg.ExtractBurst * 4},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost {
					return processGroup
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	h.Intake.RegisterRoutes(api)
	h.Students.RegisterRoutes(api)
	h.Uploads.RegisterRoutes(api)
	h.Schemas.RegisterRoutes(api)

	return r
}
