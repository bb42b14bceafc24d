package handlers

import (
	"time"

	portssvc "github.com/atlaspos/pos-backend/internal/core/ports/services"
	"github.com/atlaspos/pos-backend/internal/middleware"
	"github.com/atlaspos/pos-backend/internal/storage"
	"github.com/atlaspos/pos-backend/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	storageProvider *storage.Provider,
) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, storageProvider)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations. Auth is applied only when a JWT secret is configured;
// an on-premise branch server normally runs open.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	storageProvider *storage.Provider,
) {
	groupMiddleware := []gin.HandlerFunc{rateLimitMiddleware(cfg)}
	if cfg.JWTSecret != "" {
		// The document store follows the authenticated tenant: the first
		// request after login rebinds the adapter to the token subject.
		groupMiddleware = append(groupMiddleware,
			middleware.AuthMiddleware(cfg.JWTSecret),
			middleware.StorageBinding(storageProvider))
	}

	v1 := r.Group("/api/v1", groupMiddleware...)

	registerSyncRoutes(v1, services.Sync)
	registerPropagateRoutes(v1, services.Propagation)
	registerDocumentRoutes(v1, storageProvider)
}

func rateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{Period: cfg.RateLimitPeriod, Limit: cfg.RateLimitCount}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	return middleware.RateLimit(ipLimiter)
}
