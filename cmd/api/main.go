package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/healthmate/healthmate-api/internal/config"
	"github.com/healthmate/healthmate-api/internal/email"
	"github.com/healthmate/healthmate-api/internal/handler"
	analysisHandler "github.com/healthmate/healthmate-api/internal/handler/analysis"
	authHandler "github.com/healthmate/healthmate-api/internal/handler/auth"
	reportHandler "github.com/healthmate/healthmate-api/internal/handler/report"
	vitalsHandler "github.com/healthmate/healthmate-api/internal/handler/vitals"
	"github.com/healthmate/healthmate-api/internal/middleware"
	"github.com/healthmate/healthmate-api/internal/repository/postgres"
	"github.com/healthmate/healthmate-api/internal/repository/redisrepo"
	"github.com/healthmate/healthmate-api/internal/router"
	analysisService "github.com/healthmate/healthmate-api/internal/service/analysis"
	authService "github.com/healthmate/healthmate-api/internal/service/auth"
	reportService "github.com/healthmate/healthmate-api/internal/service/report"
	vitalsService "github.com/healthmate/healthmate-api/internal/service/vitals"
	"github.com/healthmate/healthmate-api/pkg/auth"
	"github.com/healthmate/healthmate-api/pkg/gemini"
	"github.com/healthmate/healthmate-api/pkg/logger"
	"github.com/healthmate/healthmate-api/pkg/security"
	"github.com/healthmate/healthmate-api/pkg/storage"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	revoker, err := redisrepo.NewRevocationStore(cfg.Redis.URL)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}

	userRepo := postgres.NewUserRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	insightRepo := postgres.NewInsightRepository(db)
	vitalsRepo := postgres.NewVitalsRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	hasher := security.NewBcryptHasher(0)

	mailer := email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		User:     cfg.SMTP.User,
		Password: cfg.Secrets.SMTPPassword,
	})

	store := storage.NewCloudinaryService(storage.Config{
		CloudName: cfg.Storage.CloudName,
		APIKey:    cfg.Secrets.StorageAPIKey,
		APISecret: cfg.Secrets.StorageAPISecret,
		BaseURL:   cfg.Storage.BaseURL,
	})

	aiClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Secrets.GeminiAPIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	})

	authSvc := authService.NewService(userRepo, jwtSvc, hasher, revoker, mailer, cfg.JWT.Expiry())
	reportSvc := reportService.NewService(reportRepo, store)
	vitalsSvc := vitalsService.NewService(vitalsRepo)
	analysisSvc := analysisService.NewService(reportRepo, insightRepo, store, aiClient)

	authMW := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(aiClient)
	authH := authHandler.NewHandler(authSvc, authMW)
	reportH := reportHandler.NewHandler(reportSvc, authMW)
	vitalsH := vitalsHandler.NewHandler(vitalsSvc, authMW)
	analysisH := analysisHandler.NewHandler(analysisSvc, authMW)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(authH, reportH, vitalsH, analysisH, h, router.Config{
		RateLimit:  rate.Limit(cfg.Server.RateLimitPerSec),
		RateBurst:  cfg.Server.RateLimitBurst,
		CORSConfig: corsCfg,
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownTimeout := 5 * time.Second
	if cfg.Server.ShutdownTimeoutMS > 0 {
		shutdownTimeout = time.Duration(cfg.Server.ShutdownTimeoutMS) * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
