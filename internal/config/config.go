package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port         string
	GinMode      string
	DatabaseURL  string
	RedisURL     string
	KafkaBrokers string
	NATSURL      string

	JWTSecretKey string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	FrontendURL string
}

// Load reads configuration from the environment. Payment credentials and the
// JWT secret are required; brokers are optional so the service can run
// without the event fan-out in development.
func Load() (*Config, error) {
	getEnv := func(key string, required bool) (string, error) {
		value := os.Getenv(key)
		if value == "" && required {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg := &Config{}
	var err error

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.GinMode = os.Getenv("GIN_MODE")
	if cfg.GinMode == "" {
		cfg.GinMode = "release"
	}

	if cfg.DatabaseURL, err = getEnv("DATABASE_URL", true); err != nil {
		return nil, err
	}
	if cfg.JWTSecretKey, err = getEnv("JWT_SECRET_KEY", true); err != nil {
		return nil, err
	}
	if cfg.RazorpayKeyID, err = getEnv("RAZORPAY_KEY_ID", true); err != nil {
		return nil, err
	}
	if cfg.RazorpayKeySecret, err = getEnv("RAZORPAY_KEY_SECRET", true); err != nil {
		return nil, err
	}

	cfg.RazorpayWebhookSecret = os.Getenv("RAZORPAY_WEBHOOK_SECRET")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.KafkaBrokers = os.Getenv("KAFKA_BROKERS")
	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.FrontendURL = os.Getenv("FRONTEND_URL")

	return cfg, nil
}
