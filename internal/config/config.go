package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort             = "5000"
	defaultDatabaseURL      = "svp.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTTTL           = "24h"
	defaultOTPTTL           = "10m"
	defaultOTPRetention     = "24h"
	defaultMailTimeout      = "10s"
	defaultSMTPPort         = "587"
	defaultSMTPFrom         = `"SVP International" <noreply@svp.com>`
	defaultDBMaxOpenConns   = "10"
	defaultDBMaxIdleConns   = "5"
	defaultDBConnIdleTime   = "30s"
	defaultUploadDir        = "./uploads"
	defaultUploadURLBase    = "/uploads"
	defaultRateLimitPerMin  = "30"
	defaultRateLimitEnabled = "true"
)

type Config struct {
	AppEnv string
	Port   string

	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	OTPTTL       time.Duration
	OTPRetention time.Duration

	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	SMTPFrom    string
	MailTimeout time.Duration

	UploadDir     string
	UploadURLBase string

	RedisURL           string
	RateLimitEnabled   bool
	RateLimitPerMinute int

	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("NODE_ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	cfg.SMTPUser = strings.TrimSpace(os.Getenv("SMTP_USER"))
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.SMTPFrom = strings.TrimSpace(getEnv("SMTP_FROM", defaultSMTPFrom))

	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.UploadURLBase = strings.TrimRight(strings.TrimSpace(getEnv("UPLOAD_URL_BASE", defaultUploadURLBase)), "/")

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.RateLimitEnabled = parseBoolEnv("RATE_LIMIT_ENABLED", defaultRateLimitEnabled)
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.OTPTTL, err = parseDurationEnv("OTP_TTL", defaultOTPTTL); err != nil {
		return nil, err
	}
	if cfg.OTPRetention, err = parseDurationEnv("OTP_RETENTION", defaultOTPRetention); err != nil {
		return nil, err
	}
	if cfg.MailTimeout, err = parseDurationEnv("MAIL_TIMEOUT", defaultMailTimeout); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxIdleTime, err = parseDurationEnv("DB_CONN_MAX_IDLE_TIME", defaultDBConnIdleTime); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = parseIntEnv("SMTP_PORT", defaultSMTPPort); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", defaultDBMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", defaultDBMaxIdleConns); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = parseIntEnv("RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMin); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s port=%s smtp=%t redis=%t", cfg.AppEnv, cfg.Port, cfg.SMTPEnabled(), cfg.RedisURL != "")

	return cfg, nil
}

// SMTPEnabled reports whether real mail delivery is configured.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be > 0")
	}
	if cfg.OTPRetention < 0 {
		return fmt.Errorf("OTP_RETENTION must be >= 0")
	}
	if cfg.MailTimeout <= 0 {
		return fmt.Errorf("MAIL_TIMEOUT must be > 0")
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be a valid port")
	}
	if cfg.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	if cfg.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be > 0")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.CORSAllowedOrigins) == 0 {
			return fmt.Errorf("in prod/release CORS_ALLOWED_ORIGINS must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
