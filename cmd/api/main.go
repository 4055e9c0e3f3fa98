package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/edushetra/edushetra-api/config"
	"github.com/edushetra/edushetra-api/internal/catalog"
	"github.com/edushetra/edushetra-api/internal/handlers"
	"github.com/edushetra/edushetra-api/internal/middleware"
	"github.com/edushetra/edushetra-api/internal/services"
	"github.com/edushetra/edushetra-api/internal/submission"
	"github.com/edushetra/edushetra-api/pkg/formtoken"
	"github.com/edushetra/edushetra-api/pkg/httpclient"
	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/metrics"
	"github.com/edushetra/edushetra-api/pkg/profiling"
	"github.com/edushetra/edushetra-api/pkg/recaptcha"
	"github.com/edushetra/edushetra-api/pkg/storage"
	"github.com/edushetra/edushetra-api/pkg/tracing"
	"github.com/edushetra/edushetra-api/pkg/trigger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting EduShetra API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.AlloyEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling
	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, profiling.Identity{
		ServiceName: cfg.Observability.ServiceName,
		Namespace:   cfg.Observability.ServiceNamespace,
		Version:     cfg.Observability.ServiceVersion,
		InstanceID:  cfg.Observability.ServiceInstanceID,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.Init(cfg.Observability.ServiceName)
	metrics.RecordInfrastructureMetrics()

	httpClient := httpclient.NewStandardClient()

	// Lead store
	leadRepo, closeStore, err := openStore(context.Background(), cfg, httpClient)
	if err != nil {
		logger.Fatal("Failed to initialize lead store", zap.Error(err))
	}
	defer closeStore()

	// Static content
	cat, err := catalog.Load()
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	// Form instances and their tokens
	registry := submission.NewRegistry(
		time.Duration(cfg.Submission.InstanceTTLMinutes)*time.Minute,
		time.Duration(cfg.Submission.PersistTimeoutSecs)*time.Second,
	)
	var tokens *formtoken.Manager
	if cfg.FormToken.Secret != "" {
		tokens = formtoken.NewManager(cfg.FormToken.Secret, cfg.FormToken.Issuer, cfg.FormToken.TTLHours)
	} else {
		logger.Warn("FORM_TOKEN_SECRET not set: attribution is read from the submitted page URL")
	}

	captcha := recaptcha.NewVerifier(cfg.ReCAPTCHA.SecretKey, httpClient)
	if !captcha.Enabled() {
		logger.Warn("ReCAPTCHA disabled: RECAPTCHA_V2_SECRET_KEY not set")
	}

	// Initialize services
	leadService := services.NewLeadService(leadRepo, registry, tokens, captcha, cfg, httpClient)
	levelTestService := services.NewLevelTestService(leadRepo, registry, tokens, cfg, httpClient)

	// Initialize handlers
	frontendLog := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Logging.Dir, "frontend.log"),
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAgeDays,
		Compress:   true,
	}
	defer frontendLog.Close()

	h := routeHandlers{
		health:    handlers.NewHealthHandler(leadRepo),
		forms:     handlers.NewFormsHandler(leadService),
		levelTest: handlers.NewLevelTestHandler(levelTestService),
		catalog:   handlers.NewCatalogHandler(cat),
		logs:      handlers.NewLogsHandler(frontendLog),
	}

	if cfg.ResumeStorageEnabled() {
		storageClient, storageErr := storage.NewStorageClient(storage.Config{
			AccessKeyID:     cfg.ResumeStorage.AccessKeyID,
			SecretAccessKey: cfg.ResumeStorage.SecretAccessKey,
			BucketName:      cfg.ResumeStorage.BucketName,
			Endpoint:        cfg.ResumeStorage.Endpoint,
			Region:          cfg.ResumeStorage.Region,
			PublicBaseURL:   cfg.ResumeStorage.PublicBaseURL,
		})
		if storageErr != nil {
			logger.Fatal("Failed to initialize resume storage", zap.Error(storageErr))
		}
		h.upload = handlers.NewUploadHandler(services.NewUploadService(storageClient))
	} else {
		logger.Info("Resume uploads disabled: resume storage not configured")
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))

	// CORS: only the site's origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))

	limits := rateLimiters{
		general: middleware.NewRateLimiter(50, 100),   // 50 req/sec, burst of 100
		forms:   middleware.NewRateLimiter(0.2, 5),    // 1 req/5s, burst of 5
		uploads: middleware.NewRateLimiter(0.0167, 3), // 1 req/min, burst of 3
	}
	defer limits.stop()

	registerRoutes(router, h, limits)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// in-flight submits finish on a detached context bounded by the persist timeout
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Submission.PersistTimeoutSecs)*time.Second+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// let pending webhook calls complete
	trigger.Wait()

	logger.Info("Server exited")
}
