package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sindauto/agendamento/internal/config"
	"github.com/sindauto/agendamento/internal/handlers"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/middleware"
	"github.com/sindauto/agendamento/internal/observability"
	"github.com/sindauto/agendamento/internal/services"
	"github.com/sindauto/agendamento/internal/utils/httpclient"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sindauto/agendamento/docs"
)

// @title           Sindauto Agendamento API
// @version         1.0
// @description     API de agendamento de atendimento presencial do Sindauto. Cada tentativa de agendamento é uma sessão no servidor que percorre identificação, cidade, data e horário, aceite e envio.

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name booking
// @tag.description Sessões de agendamento e consulta

// @tag.name admin
// @tag.description Relatórios administrativos

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logging.Logger.Sync() }()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	// Initialize observability
	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	// Booking history lives in MongoDB; outside production the service runs without it
	var history services.BookingHistory
	if err := config.InitMongoDB(); err != nil {
		if cfg.Environment == "production" {
			logging.Logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		logging.Logger.Warn("MongoDB unavailable, keeping booking history in memory", zap.Error(err))
		history = services.NewMemoryBookingHistory()
	} else {
		history = services.NewMongoBookingHistory(config.MongoDB.Collection(cfg.BookingCollection))
	}

	config.InitRedis()

	scheduling := services.NewSchedulingClient(cfg.APIBaseURL, httpclient.New(0), logging.Logger)

	var guard services.SubmissionGuard
	var cache services.LookupCache
	if config.Redis != nil {
		guard = services.NewRedisSubmissionGuard(config.Redis, cfg.SubmitTimeout+5*time.Second, logging.Logger)
		cache = config.Redis
	}

	registry := services.NewWorkflowRegistry(services.WorkflowDeps{
		Fetcher:     scheduling,
		Submitter:   services.NewBookingSubmitter(scheduling, cfg.SubmitTimeout, logging.Logger),
		Guard:       guard,
		History:     history,
		Location:    cfg.Location(),
		SlotTimeout: cfg.SlotFetchTimeout,
		Logger:      logging.Logger,
	}, cfg.SessionTTL)
	lookupService := services.NewLookupService(history, cache, scheduling, cfg.LookupCacheTTL, cfg.LookupTimeout, logging.Logger)
	reportService := services.NewReportService(history, logging.Logger)

	bookingHandlers := handlers.NewBookingHandlers(logging.Logger, registry)
	lookupHandlers := handlers.NewLookupHandlers(logging.Logger, lookupService)
	reportHandlers := handlers.NewReportHandlers(logging.Logger, reportService, cfg.Location())

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	registry.StartSweeper(bgCtx, time.Minute)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartJanitor(bgCtx, 5*time.Minute)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTracker(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.GET("/service-points", handlers.ListServicePoints)

		bookings := v1.Group("/bookings")
		{
			bookings.POST("/workflows", bookingHandlers.CreateWorkflow)
			bookings.GET("/workflows/:id", bookingHandlers.GetWorkflow)
			bookings.PUT("/workflows/:id/identity", bookingHandlers.UpdateIdentity)
			bookings.PUT("/workflows/:id/location", bookingHandlers.UpdateLocation)
			bookings.PUT("/workflows/:id/date", bookingHandlers.UpdateDate)
			bookings.PUT("/workflows/:id/time", bookingHandlers.UpdateTime)
			bookings.PUT("/workflows/:id/consent", bookingHandlers.UpdateConsent)
			bookings.POST("/workflows/:id/submit", limiter.Middleware(), bookingHandlers.SubmitWorkflow)
			bookings.POST("/workflows/:id/retry", bookingHandlers.RetryWorkflow)
			bookings.POST("/workflows/:id/reset", bookingHandlers.ResetWorkflow)
			bookings.DELETE("/workflows/:id", bookingHandlers.DeleteWorkflow)
			bookings.POST("/lookup", limiter.Middleware(), lookupHandlers.LookupBooking)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.AdminJWTSecret), middleware.RequireAdmin(cfg.AdminRole))
		{
			admin.GET("/reports", reportHandlers.GetReport)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SubmitTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	stopBackground()
	registry.CloseAll()

	if config.MongoDB != nil {
		if err := config.MongoDB.Client().Disconnect(ctx); err != nil {
			logging.Logger.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}
	if config.Redis != nil {
		if err := config.Redis.Close(); err != nil {
			logging.Logger.Error("failed to close Redis", zap.Error(err))
		}
	}

	logging.Logger.Info("server exited gracefully")
}
