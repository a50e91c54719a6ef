package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort        = "3000"
	defaultDatabaseURL = "applyhub.db"
	defaultUploadDir   = "./uploads"
	defaultFee         = "500"
	defaultCurrency    = "INR"
)

type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	UploadDir         string
	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	ApplicationFee    int64 // major currency units per submission
	Currency          string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.RazorpayKeyID = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_ID"))
	cfg.RazorpayKeySecret = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET"))
	cfg.RazorpayBaseURL = strings.TrimSpace(os.Getenv("RAZORPAY_BASE_URL"))
	cfg.Currency = strings.ToUpper(strings.TrimSpace(getEnv("CURRENCY", defaultCurrency)))

	var err error
	cfg.ApplicationFee, err = parseInt64Env("APPLICATION_FEE", defaultFee)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Printf("razorpay credentials are not set: submissions will fail until RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are configured")
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT value %q", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if cfg.ApplicationFee <= 0 {
		return fmt.Errorf("APPLICATION_FEE must be > 0")
	}
	if cfg.Currency == "" {
		return fmt.Errorf("CURRENCY must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
			return fmt.Errorf("in prod/release RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
