package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moneytrack/internal/config"
	"moneytrack/internal/currency"
	"moneytrack/internal/database"
	"moneytrack/internal/handlers"
	"moneytrack/internal/middleware"
	"moneytrack/internal/repositories"
	"moneytrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	registry := currency.NewRegistry()
	normalizer := services.NewAmountNormalizer(registry, metrics)
	resolver := services.NewCategoryResolver(categoryRepo, metrics, logger)
	notifier := services.NewThresholdNotifier(expenseRepo, metrics, logger)
	recorder := services.NewExpenseRecorder(db.DB, expenseRepo, registry, resolver, normalizer, notifier, metrics, logger)
	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost)

	if cfg.IsDevelopment() {
		seedDemoUser(db, tokenService, passwordService, logger)
	}

	// Handlers
	expenseHandler := handlers.NewExpenseHandler(userRepo, recorder)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)
	devHandler := handlers.NewDevHandler(recorder, expenseHandler)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := middleware.RequireAuth(tokenService)

	expense := e.Group("/expense", auth)
	expense.POST("/add", expenseHandler.AddExpenses)
	expense.GET("/find_all", expenseHandler.FindAllExpenses)
	expense.GET("/find/:id", expenseHandler.FindExpense)
	expense.GET("/find/:id/:start/:end", expenseHandler.FindExpensesByRange)
	expense.POST("/update/:id", expenseHandler.UpdateExpense)
	expense.DELETE("/delete/:id", expenseHandler.DeleteExpense)
	expense.DELETE("/delete_all", expenseHandler.DeleteAllExpenses)
	expense.DELETE("/delete_all/:categoryId", expenseHandler.DeleteAllExpensesByCategory)

	if cfg.IsDevelopment() {
		dev := e.Group("/dev", auth)
		dev.POST("/seed", devHandler.SeedExpenses)
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Starting server", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}

// seedDemoUser creates the development demo user and logs an access token
// for it, since the API deliberately has no registration or login surface.
func seedDemoUser(db *database.DB, tokenService services.TokenServiceInterface, passwordService services.PasswordServiceInterface, logger *slog.Logger) {
	password := os.Getenv("DEMO_USER_PASSWORD")
	if password == "" {
		password = "demo-password"
	}

	hash, err := passwordService.HashPassword(password)
	if err != nil {
		logger.Warn("Failed to hash demo user password", "error", err)
		return
	}

	user, err := db.SeedDemoUser("demo", "demo@moneytrack.local", hash, "USD")
	if err != nil {
		logger.Warn("Failed to seed demo user", "error", err)
		return
	}

	token, err := tokenService.GenerateAccessToken(user)
	if err != nil {
		logger.Warn("Failed to generate demo access token", "error", err)
		return
	}

	logger.Info("Demo user ready", "username", user.Username, "access_token", token)
}
