package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит всю конфигурацию приложения, собранную из окружения.
type Config struct {
	Env             string
	HTTPPort        string
	DatabaseURL     string
	MigrationsPath  string
	JWTSecret       string
	SessionTokenTTL time.Duration
	OTPTTL          time.Duration
	OTPBypassCode   string
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	EmailFrom       string
	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Файл .env подхватывается, если присутствует.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPPort:        getEnv("PORT", "8080"),
		DatabaseURL:     getDatabaseURL(),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		SessionTokenTTL: mustParseDuration(getEnv("SESSION_TOKEN_TTL", "720h")),
		OTPTTL:          mustParseDuration(getEnv("OTP_TTL", "10m")),
		OTPBypassCode:   getEnv("OTP_BYPASS_CODE", ""),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        int(mustParseInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUser:        getEnv("EMAIL_USER", ""),
		SMTPPassword:    getEnv("EMAIL_PASS", ""),
		EmailFrom:       getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "noreply@snipstash.local")),
		RateLimitLimit:  mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "10")),
		RateLimitPeriod: mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m")),
	}

	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins != "" {
		for _, o := range strings.Split(origins, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if cfg.Env == "production" {
		if len(cfg.JWTSecret) < 32 || cfg.JWTSecret == "dev-secret-change-me" {
			return nil, fmt.Errorf("config: JWT_SECRET обязателен в production и должен быть не короче 32 символов")
		}
		if cfg.OTPBypassCode != "" {
			return nil, fmt.Errorf("config: OTP_BYPASS_CODE запрещён в production")
		}
		if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
			return nil, fmt.Errorf("config: EMAIL_USER и EMAIL_PASS обязательны в production")
		}
		if len(cfg.AllowedOrigins) == 0 {
			return nil, fmt.Errorf("config: ALLOWED_ORIGINS обязателен в production")
		}
	} else if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDatabaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "123")
	name := getEnv("DB_NAME", "snipstash")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslmode)
}

func mustParseDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		panic(fmt.Sprintf("config: неверный формат длительности %q: %v", raw, err))
	}
	return d
}

func mustParseInt64(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("config: неверное число %q: %v", raw, err))
	}
	return n
}
