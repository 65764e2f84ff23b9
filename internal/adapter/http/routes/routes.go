package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"crmchat/internal/adapter/http/handler"
	"crmchat/internal/adapter/http/helper"
	"crmchat/internal/adapter/http/middleware"
	"crmchat/internal/core/telemetry"
	"crmchat/pkg/config"
)

type HandlersConfig struct {
	UserHandler    *handler.UserHandler
	DealHandler    *handler.DealHandler
	MessageHandler *handler.MessageHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, config.GetDefaultConfig())
}

// SetupRouterWithConfig builds the full middleware chain. metrics may be
// nil, in which case request metrics are not collected.
func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.LokiLogger, cfg *config.AppConfig) *gin.Engine {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.CurrentMiddleware())

	if cfg.EnforceHTTPS {
		router.Use(middleware.NewHTTPSEnforcer(true, logger.Zap()).HTTPSMiddleware())
	}

	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.LoggingMiddleware(logger))

	if cfg.RateLimitEnabled {
		limits := cfg.RateLimitConfigs
		if limits == nil {
			limits = config.DefaultRateLimits()
		}

		router.Use(middleware.NewRateLimiter(limits, logger.Zap(), metrics).RateLimitMiddleware())
	}

	if metrics != nil {
		router.Use(middleware.MetricsMiddleware(metrics))
	}

	registerRoutes(router, handlers)

	return router
}

// SetupRouterForTests mounts the routes behind recovery and request ids only.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(config.NewNopLogger()))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.CurrentMiddleware())

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	router.GET("/", handler.Health)

	api := router.Group("/api")

	if handlers.UserHandler != nil {
		api.POST("/login", handlers.UserHandler.Login)
		api.GET("/users", handlers.UserHandler.ListUsers)
	}

	if handlers.DealHandler != nil {
		api.GET("/deals", handlers.DealHandler.ListDeals)
		api.POST("/deals", handlers.DealHandler.CreateDeal)
		api.PUT("/deals/:id", handlers.DealHandler.UpdateDeal)
		api.DELETE("/deals/:id", handlers.DealHandler.DeleteDeal)
	}

	if handlers.MessageHandler != nil {
		api.GET("/messages/:dealId", handlers.MessageHandler.ListMessages)
		api.POST("/messages", handlers.MessageHandler.PostMessage)
	}

	router.NoRoute(func(c *gin.Context) {
		helper.SendNotFoundError(c, "Маршрут не найден")
	})
}
