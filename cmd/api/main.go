package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/application/service"
	"github.com/sangkips/salay-pos/internal/config"
	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/infrastructure/database"
	"github.com/sangkips/salay-pos/internal/infrastructure/jobs"
	"github.com/sangkips/salay-pos/internal/infrastructure/repository"
	"github.com/sangkips/salay-pos/internal/presentation/http/handler"
	"github.com/sangkips/salay-pos/internal/presentation/http/routes"
	"github.com/sangkips/salay-pos/pkg/email"
	"github.com/sangkips/salay-pos/pkg/logger"
	"github.com/sangkips/salay-pos/pkg/printer"
	"github.com/sangkips/salay-pos/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// api hash-pin <pin> prints a value for AUTH_CLERK_PIN_HASH.
	if len(os.Args) == 3 && os.Args[1] == "hash-pin" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(logger.Config{Environment: cfg.App.Env, Level: cfg.App.LogLevel})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.App.Location()

	// Connect to database
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	transactionRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})
	if !emailService.Configured() {
		log.Info("smtp not configured, e-mailed receipts disabled")
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer func() { _ = thermalPrinter.Close() }()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize services
	header := receiptHeader(&cfg.Shop)
	transactionService := service.NewTransactionService(transactionRepo, loc, cfg.History.Limit, log)
	receiptService := service.NewReceiptService(transactionRepo, header, loc, emailService, log)
	printerService := service.NewPrinterService(thermalPrinter, receiptService, cfg.Printer.Type, cfg.Printer.Width, log)
	exportService := service.NewExportService(transactionRepo, loc, log)
	authService := service.NewAuthService(cfg.Auth.ClerkPinHash, jwtManager, log)
	if !authService.Enabled() {
		log.Warn("clerk PIN not set, transaction routes are open")
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Transaction: handler.NewTransactionHandler(transactionService, receiptService, exportService, log),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	rateLimiter := routes.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Auth:            authService,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          log,
		RateLimiter:     rateLimiter,
	})

	scheduler := jobs.NewScheduler(log)
	if err := scheduler.RegisterIdempotencyCleanup(cfg.Idempotency.CleanupSpec, idempotencyRepo); err != nil {
		log.Fatal("invalid idempotency cleanup schedule", zap.Error(err))
	}
	scheduler.Start()

	port := cfg.App.Port
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("db", cfg.Database.Driver),
			zap.String("timezone", loc.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	scheduler.Stop(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func receiptHeader(shop *config.ShopConfig) entity.ReceiptHeader {
	return entity.ReceiptHeader{
		ShopName: shop.Name,
		Tagline:  shop.Tagline,
		Address:  shop.Address,
		Phone:    shop.Phone,
		Footer:   shop.Footer,
	}
}
