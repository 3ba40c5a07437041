package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/config"
	domainRepo "github.com/sangkips/salay-pos/internal/domain/repository"
	"github.com/sangkips/salay-pos/internal/presentation/http/handler"
	"github.com/sangkips/salay-pos/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Transaction *handler.TransactionHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Auth            middleware.TokenAuthenticator
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
	RateLimiter     *middleware.ClientRateLimiter
}

// NewRateLimiter builds the API rate limiter from configuration.
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.ClientRateLimiter {
	perSecond := 0.0
	if cfg.Duration > 0 {
		perSecond = float64(cfg.Requests) / float64(cfg.Duration)
	}
	return middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: perSecond,
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	api := router.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}

	api.POST("/auth/login", h.Auth.Login)

	// Open when clerk login is not configured
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))

	registerTransactionRoutes(protected, h, deps, log)
	registerPrinterRoutes(protected, h)

	return router
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps, log *zap.Logger) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			TTL:    deps.Cfg.Idempotency.TTL,
			Logger: log,
		}), h.Transaction.Create)
		transactions.GET("/export", h.Transaction.Export)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.GET("/:id/receipt", h.Transaction.Receipt)
		transactions.POST("/:id/print", h.Printer.PrintReceipt)
		transactions.POST("/:id/email", h.Transaction.Email)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
