package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Port string
	Env  string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	RedisURL string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	StripeSecretKey   string
	StripeWebhookKey  string
	RazorpayKeyID     string
	RazorpayKeySecret string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// SNS topic for order lifecycle events; empty disables publishing.
	OrderSNSTopicARN string
	AWSEnabled       bool

	// Per-IP throttle on the credential endpoints.
	AuthRatePerMinute int
	AuthRateBurst     int

	DeliveryFee int64
	Currency    string
}

// LoadConfig reads configuration from the environment, with .env as a
// local-development fallback.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookKey:  os.Getenv("STRIPE_WEBHOOK_KEY"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: os.Getenv("SMTP_PORT"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		OrderSNSTopicARN: os.Getenv("ORDER_SNS_TOPIC_ARN"),
		AWSEnabled:       os.Getenv("AWS_ENABLED") == "true",

		AuthRatePerMinute: int(getEnvInt64("AUTH_RATE_PER_MINUTE", 100)),
		AuthRateBurst:     int(getEnvInt64("AUTH_RATE_BURST", 50)),

		DeliveryFee: getEnvInt64("DELIVERY_FEE", 10),
		Currency:    getEnv("CURRENCY", "inr"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
