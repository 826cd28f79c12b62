package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const Production = "production"

// Config holds the console configuration with validation
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development" validate:"required"`
	Port        int    `env:"PORT" envDefault:"8080" validate:"required,min=1,max=65535"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"required,oneof=debug info warn error"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"required,oneof=text json"`
	PageSize    int    `env:"PAGE_SIZE" envDefault:"20" validate:"min=1,max=100"`

	API      APIConfig      `envPrefix:"API_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Secrets  SecretsConfig  `envPrefix:"SECRETS_"`
	Session  SessionConfig  `envPrefix:"SESSION_"`
	Security SecurityConfig
	Server   ServerConfig  `envPrefix:"SERVER_"`
	Metrics  MetricsConfig `envPrefix:"METRICS_"`
}

// APIConfig points at the asset management REST API
type APIConfig struct {
	BaseURL        string        `env:"BASE_URL" validate:"required,url"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"10s" validate:"required"`
	RetryAttempts  int           `env:"RETRY_ATTEMPTS" envDefault:"3" validate:"min=0,max=10"`
	RetryDelay     time.Duration `env:"RETRY_DELAY" envDefault:"500ms"`
	MaxPayloadSize int64         `env:"MAX_PAYLOAD_SIZE" envDefault:"1048576" validate:"min=1024"`
}

// DatabaseConfig holds the session database configuration
type DatabaseConfig struct {
	Host            string        `env:"HOST" envDefault:"localhost" validate:"required"`
	Port            int           `env:"PORT" envDefault:"5432" validate:"required,min=1,max=65535"`
	User            string        `env:"USER"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME"`
	SSLMode         string        `env:"SSL_MODE" envDefault:"disable" validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10" validate:"min=1"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5" validate:"min=1"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

// SecretsConfig selects where one-time results are parked between the
// form post and the result dialog
type SecretsConfig struct {
	Store    string        `env:"STORE" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"TTL" envDefault:"2m" validate:"required"`
}

// SessionConfig holds the browser session settings. The memory store
// loses every session on restart and cannot be shared between instances.
type SessionConfig struct {
	Store      string        `env:"STORE" envDefault:"postgres" validate:"oneof=memory postgres"`
	CookieName string        `env:"COOKIE_NAME" envDefault:"oam_sid" validate:"required"`
	Duration   time.Duration `env:"DURATION" envDefault:"12h" validate:"required"`
	Secure     bool          `env:"SECURE" envDefault:"false"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimitRPS    int           `env:"RATE_LIMIT_RPS" envDefault:"50" validate:"min=1"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"100" validate:"min=1"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"required"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s" validate:"required"`
	EnableCORS      bool          `env:"ENABLE_CORS" envDefault:"false"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
}

// ServerConfig holds HTTP server tuning
type ServerConfig struct {
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"10s" validate:"required"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s" validate:"required"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s" validate:"required"`
	MaxHeaderBytes int           `env:"MAX_HEADER_BYTES" envDefault:"1048576" validate:"min=1024"`
}

// MetricsConfig controls the prometheus listener
type MetricsConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Port    int    `env:"PORT" envDefault:"9090" validate:"min=1,max=65535"`
	Path    string `env:"PATH" envDefault:"/metrics"`
}

// LoadConfig reads .env files when present, parses the environment and
// validates the result
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env", ".env.local"}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// validateConfig runs the struct tags and the cross-field rules
func validateConfig(cfg *Config) error {
	var errors []string

	if err := validator.New().Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errors = append(errors, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
			}
		} else {
			errors = append(errors, err.Error())
		}
	}

	if cfg.UsesDatabase() {
		if cfg.Database.User == "" {
			errors = append(errors, "database user is required")
		}
		if cfg.Database.Name == "" {
			errors = append(errors, "database name is required")
		}
		if cfg.Database.Password == "" && cfg.IsProduction() {
			errors = append(errors, "database password is required in production")
		}
	} else if cfg.IsProduction() {
		errors = append(errors, "the memory session store is not allowed in production")
	}

	if cfg.Secrets.Store == "redis" && cfg.Secrets.RedisURL == "" {
		errors = append(errors, "secrets redis URL is required when the store is redis")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Port == cfg.Port {
		errors = append(errors, "metrics port must differ from the server port")
	}

	if cfg.API.BaseURL != "" {
		if u, err := url.Parse(cfg.API.BaseURL); err == nil && u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, "API base URL must be http or https")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// UsesDatabase reports whether sessions are kept in PostgreSQL
func (c *Config) UsesDatabase() bool {
	return c.Session.Store == "postgres"
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode)
}
