package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/api"
	"github.com/shodhsrija/foundation-backend/internal/config"
	"github.com/shodhsrija/foundation-backend/internal/events"
	"github.com/shodhsrija/foundation-backend/internal/gateway"
	"github.com/shodhsrija/foundation-backend/internal/repository"
	"github.com/shodhsrija/foundation-backend/internal/service"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := telemetry.InitTelemetry("foundation-backend"); err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(context.Background())

	telemetry.Logger.Info("Starting foundation backend")

	// Connect to PostgreSQL
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		telemetry.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.InitDB(db); err != nil {
		telemetry.Logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Connect to Redis when configured; the service degrades gracefully
	// without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		defer redisClient.Close()
	}

	// Connect to NATS when configured.
	var nc *nats.Conn
	if cfg.NATSURL != "" {
		nc, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			telemetry.Logger.Warn("Failed to connect to NATS, certificate events disabled", zap.Error(err))
			nc = nil
		} else {
			defer nc.Close()
		}
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, nc)
	defer publisher.Close()

	razorpay := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)

	paymentRepo := repository.NewPaymentRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	siteRepo := repository.NewSiteRepository(db)

	paymentSvc := service.NewPaymentService(paymentRepo, membershipRepo, donationRepo, razorpay, publisher, redisClient)

	r := api.NewRouter(cfg, api.Deps{
		Payments:    paymentSvc,
		Memberships: service.NewMembershipService(membershipRepo),
		Donations:   service.NewDonationService(donationRepo, paymentSvc),
		Issues:      service.NewIssueService(issueRepo),
		Site:        service.NewSiteService(siteRepo, redisClient),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		telemetry.Logger.Info("HTTP server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	telemetry.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	telemetry.Logger.Info("Server exited")
}
