package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("WARN: No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"REMINDER_LISTS_COLLECTION",
		"REMINDERS_COLLECTION",
		"WEBHOOK_URL",
		"PORT",
	}

	// Print environment variables for debugging
	log.Println("Environment variables:")
	for _, envVar := range requiredEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			log.Printf("%s: not set", envVar)
		} else {
			log.Printf("%s: set", envVar)
		}
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}
	utils.InitValidator()
	// Initialize MongoDB connection
	utils.InitMongoClient()
}

// app bundles everything the router and the background sweep share
type app struct {
	cfg      config.ProgressConfig
	calendar model.Calendar

	reports  *repository.ReportsRepo
	ledger   *repository.LedgerRepo
	notifier *services.Notifier
	cache    *services.StatusCache

	reportsService *usecase.ReportsService
	statusService  *usecase.StatusService
	reminders      *repository.RemindersRepo
}

func buildApp() *app {
	cfg := config.LoadProgressConfig()

	calendar := model.NewCalendar(cfg.Location(), cfg.WeekStart)

	reminders := repository.GetRemindersRepo(utils.MongoClient)
	reports := repository.NewReportsRepo(cfg.DataDir)
	ledger := repository.NewLedgerRepo(cfg.DataDir, cfg.MediaDir)

	reportsService := usecase.NewReportsService(reports)
	statusService := usecase.NewStatusService(reminders)

	var cache *services.StatusCache
	if cfg.RedisURL != "" {
		var err error
		cache, err = services.NewStatusCache(cfg.RedisURL, cfg.StatusCacheTTL)
		if err != nil {
			log.Printf("WARN: Status cache unavailable, running without it: %v", err)
			cache = nil
		}
	}

	var giphy *services.GiphyClient
	if cfg.GiphyAPIKey != "" {
		giphy = services.NewGiphyClient(cfg.GiphyAPIKey)
	} else {
		log.Println("WARN: GIPHY_API_KEY not set, notifications go out without media")
	}

	notifier := &services.Notifier{
		Reports:  reports,
		Statuses: statusService,
		Ledger:   ledger,
		Messages: services.LoadMessageStore(utils.GetEnvAsString("MESSAGES_FILE", "")),
		Giphy:    giphy,
		Center:   services.NewWebhookNotificationCenter(cfg.WebhookURL),
		Cache:    cache,
		Calendar: calendar,
	}

	return &app{
		cfg:            cfg,
		calendar:       calendar,
		reports:        reports,
		ledger:         ledger,
		notifier:       notifier,
		cache:          cache,
		reportsService: reportsService,
		statusService:  statusService,
		reminders:      reminders,
	}
}

func setupRouter(a *app) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RecoveryMiddleware())

	reportsHandler := handler.NewReportsHandler(a.reportsService, a.cache)
	statusHandler := handler.NewStatusHandler(a.reportsService, a.statusService, a.cache, a.calendar)
	listsHandler := handler.NewListsHandler(a.reminders)
	notificationsHandler := handler.NewNotificationsHandler(a.notifier, a.ledger)
	healthHandler := handler.NewHealthHandler(utils.MongoClient, a.reports)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler.GetHealth)

	api := router.Group("/api")
	{
		reports := api.Group("/reports")
		{
			reports.GET("/", reportsHandler.GetReports)
			reports.GET("/grouped", reportsHandler.GetReportsGrouped)
			reports.POST("/", reportsHandler.CreateReport)
			reports.GET("/:id", reportsHandler.GetReport)
			reports.PUT("/:id", reportsHandler.UpdateReport)
			reports.DELETE("/:id", reportsHandler.DeleteReport)
			reports.GET("/:id/status", statusHandler.GetStatus)
		}

		api.GET("/statuses", statusHandler.GetAllStatuses)
		api.GET("/lists", listsHandler.GetLists)

		notifications := api.Group("/notifications")
		{
			notifications.POST("/sweep", notificationsHandler.Sweep)
			notifications.GET("/sent", notificationsHandler.GetSent)
			notifications.POST("/authorize", notificationsHandler.RequestAuthorization)
		}
	}

	return router
}

// runSweeper fires a notification sweep on every tick, and whenever the
// report store changes, until the context is cancelled. One sweep runs
// immediately on startup.
func runSweeper(ctx context.Context, notifier *services.Notifier, interval time.Duration, changes <-chan struct{}) {
	sweep := func() {
		statuses, errs := notifier.SendWhereNeeded(ctx)
		log.Printf("INFO: [Sweeper] Evaluated %d reports, %d errors", len(statuses), len(errs))
		for _, err := range errs {
			log.Printf("ERROR: [Sweeper] %v", err)
		}
	}

	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		case <-changes:
			sweep()
		}
	}
}

func main() {
	a := buildApp()
	router := setupRouter(a)

	if err := a.notifier.RequestAuthorization(context.Background()); err != nil {
		log.Printf("WARN: Notification center authorization failed: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// report changes wake the sweeper so new or edited reports are
	// re-evaluated without waiting for the next tick
	reportChanges := make(chan struct{}, 1)
	a.reports.Subscribe(func() {
		select {
		case reportChanges <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	go runSweeper(ctx, a.notifier, a.cfg.SweepInterval, reportChanges)

	go func() {
		log.Printf("INFO: Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("INFO: Caught signal %s, shutting down", sig)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server shutdown failed: %v", err)
	}
	if err := utils.MongoClient.Disconnect(shutdownCtx); err != nil {
		log.Printf("ERROR: MongoDB disconnect failed: %v", err)
	}
	log.Println("INFO: Server shutdown complete")
}
