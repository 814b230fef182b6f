package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yigit/claimboard/internal/pkg/helpers"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string   `yaml:"port" env:"SERVER_PORT"`
		Mode        string   `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		MaxUploadMB int      `yaml:"max_upload_mb" env:"SERVER_MAX_UPLOAD_MB"`
		CorsOrigins []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Redis struct {
		URL            string `yaml:"url" env:"REDIS_URL"`
		LeaderboardTTL string `yaml:"leaderboard_ttl" env:"REDIS_LEADERBOARD_TTL"`
		EventStream    string `yaml:"event_stream" env:"REDIS_EVENT_STREAM"`
		EventMaxLen    int64  `yaml:"event_max_len" env:"REDIS_EVENT_MAX_LEN"`
	} `yaml:"redis"`

	Claims struct {
		FallbackMentorEmail string `yaml:"fallback_mentor_email" env:"CLAIMS_FALLBACK_MENTOR_EMAIL"`
		FallbackMentorName  string `yaml:"fallback_mentor_name" env:"CLAIMS_FALLBACK_MENTOR_NAME"`
		SeedFallbackMentor  bool   `yaml:"seed_fallback_mentor" env:"CLAIMS_SEED_FALLBACK_MENTOR"`
	} `yaml:"claims"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	config.Claims.FallbackMentorEmail = strings.ToLower(strings.TrimSpace(config.Claims.FallbackMentorEmail))

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "./uploads"
	config.Server.MaxUploadMB = 5
	config.Server.CorsOrigins = []string{"http://localhost:5173"}

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "claimboard"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "./migrations"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "claimboard"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Redis defaults; an empty URL disables the cache and event stream
	config.Redis.LeaderboardTTL = "1m"
	config.Redis.EventStream = "claims.events"
	config.Redis.EventMaxLen = 10000

	// Claims defaults
	config.Claims.FallbackMentorName = "Default Mentor"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Claims.FallbackMentorEmail == "" {
		return fmt.Errorf("claims fallback mentor email is required")
	}

	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server max upload size must be positive")
	}

	if config.Server.StoragePath == "" {
		return fmt.Errorf("server storage path is required")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AccessTokenTTL returns the parsed JWT lifetime
func (c *Config) AccessTokenTTL() time.Duration {
	return helpers.ParseDuration(c.JWT.AccessTokenExpiration, 24*time.Hour)
}

// LeaderboardCacheTTL returns the parsed leaderboard cache lifetime
func (c *Config) LeaderboardCacheTTL() time.Duration {
	return helpers.ParseDuration(c.Redis.LeaderboardTTL, time.Minute)
}

// MaxUploadBytes returns the proof size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) * 1024 * 1024
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
