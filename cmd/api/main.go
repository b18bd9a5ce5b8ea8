package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stocksentry/internal/alerting"
	"stocksentry/internal/config"
	"stocksentry/internal/database"
	"stocksentry/internal/feed"
	"stocksentry/internal/handlers"
	"stocksentry/internal/logger"
	"stocksentry/internal/metrics"
	"stocksentry/internal/middleware"
	"stocksentry/internal/notify"
	"stocksentry/internal/services"
	"stocksentry/internal/validator"

	_ "stocksentry/internal/docs" // Import swagger docs
)

// @title           StockSentry API
// @version         1.0
// @description     StockSentry lets users track stock symbols in watchlists, receive multi-channel news alerts, and share watchlists with time-limited codes.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager and apply migrations
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	db := dbManager.DB()

	// External collaborators
	httpClient := &http.Client{Timeout: 10 * time.Second}
	feedClient := feed.NewNewsAPIClient(httpClient, appConfig.NewsAPIBaseURL, appConfig.NewsAPIKey)
	broadcaster := notify.NewWebhookBroadcaster(appConfig.BroadcastWebhookURL)
	emailSender := notify.NewMailGatewayClient(appConfig.MailGatewayURL, appConfig.MailGatewayKey, appConfig.MailFromAddress)
	smsSender := notify.NewSMSGatewayClient(appConfig.SMSGatewayURL, appConfig.SMSGatewayKey)

	// Initialize services
	userService := services.NewUserService(db)
	watchlistService := services.NewWatchlistService(db)
	shareTokenService := services.NewShareTokenService(db, appConfig.ShareTokenTTL)
	alertLedger := services.NewAlertLedgerService(db)

	// Alert pipeline
	recorder := metrics.New()
	policy := alerting.NewPolicy(feedClient, appConfig.AlertKeywords)
	dispatcher := alerting.NewDispatcher(watchlistService, broadcaster, emailSender, smsSender, alertLedger, recorder)
	scheduler := alerting.NewScheduler(userService, watchlistService, policy, dispatcher, recorder, appConfig.ScanInterval)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start alert scheduler: %w", err)
	}
	defer scheduler.Stop()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService, shareTokenService, emailSender)
	newsHandler := handlers.NewNewsHandler(feedClient, broadcaster)

	// Initialize Gin router
	validator.Register()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Operational endpoints
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")

	// User routes
	users := v1.Group("/users")
	users.POST("", userHandler.CreateUser)
	users.GET("/:id", userHandler.GetUser)
	users.GET("/:id/watchlists", watchlistHandler.GetUserWatchlists)

	// Watchlist routes
	watchlists := v1.Group("/watchlists")
	watchlists.POST("", watchlistHandler.CreateWatchlist)
	watchlists.POST("/share", watchlistHandler.ShareWatchlist)
	watchlists.GET("/share/:code", watchlistHandler.GetSharedWatchlist)
	watchlists.GET("/:id", watchlistHandler.GetWatchlist)
	watchlists.DELETE("/:id", watchlistHandler.DeleteWatchlist)
	watchlists.POST("/:id/symbols", watchlistHandler.AddSymbols)
	watchlists.DELETE("/:id/symbols/:symbol", watchlistHandler.RemoveSymbol)

	// News routes
	news := v1.Group("/news")
	news.GET("/test-broadcast/:symbol", newsHandler.TestBroadcast)
	news.GET("/:symbol", newsHandler.GetNews)

	log.Infof("Starting StockSentry backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
