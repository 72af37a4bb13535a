package handlers

import (
	"lambda-http-bridge/internal/config"
	"lambda-http-bridge/internal/middleware"

	"github.com/gin-gonic/gin"
)

// maxRequestBody matches the Lambda synchronous invocation payload limit
const maxRequestBody = 6 << 20

// NewRouter builds the demo service wrapped by the adapter
func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.RequestSizeLimit(maxRequestBody))

	SetupRoutes(router, cfg)
	return router
}

// SetupRoutes configures all routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	systemHandler := NewSystemHandler(cfg)
	echoHandler := NewEchoHandler()

	router.GET("/", echoHandler.Root)
	router.GET("/health", systemHandler.Health)
	router.GET("/hello/:name", echoHandler.Hello)
	router.GET("/context", echoHandler.Context)
	router.GET("/bytes/:n", echoHandler.Bytes)
	router.Any("/echo", echoHandler.Echo)
}
