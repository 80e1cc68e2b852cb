package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

var ErrInsecureSecret = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port     string
	Env      string
	LogLevel string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseDSN   string

	JWTSecret string
	JWTExpiry time.Duration

	LLM  LLMConfig
	Mail MailConfig

	CORSOrigins []string
}

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Load reads the configuration from the environment. Malformed durations or
// numbers are reported rather than silently defaulted.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "notezipper"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/notezipper?parseTime=true"),

		JWTSecret: getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry: getDuration("JWT_EXPIRY", 30*24*time.Hour, &errs),

		LLM: LLMConfig{
			APIKey:  getEnv("LLM_API_KEY", os.Getenv("GROQ_API_KEY")),
			BaseURL: strings.TrimRight(getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"), "/"),
			Model:   getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			Timeout: getDuration("LLM_TIMEOUT", 30*time.Second, &errs),
		},

		Mail: MailConfig{
			Host:     getEnv("MAIL_HOST", "smtp.gmail.com"),
			Port:     getInt("MAIL_PORT", 465, &errs),
			Username: getEnv("MAIL_USERNAME", os.Getenv("ADMIN_EMAIL")),
			Password: getEnv("MAIL_PASSWORD", os.Getenv("ADMIN_EMAIL_APP_PASSWORD")),
			Timeout:  getDuration("MAIL_TIMEOUT", 15*time.Second, &errs),
		},

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	switch cfg.StoreDriver {
	case DriverMongo, DriverMySQL, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unsupported driver %q", cfg.StoreDriver))
	}

	if cfg.IsProduction() && cfg.JWTSecret == devJWTSecret {
		errs = append(errs, ErrInsecureSecret)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Enabled reports whether SMTP credentials are configured.
func (c MailConfig) Enabled() bool {
	return c.Username != "" && c.Password != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}

func getInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
