package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	DatabaseURL  string
	IsProduction bool

	// JWT auth is optional: an empty secret leaves the API open, which is the
	// normal mode for an on-premise branch server.
	JWTSecret string

	// Document store selection.
	StorageBackend string // "redis", "pgsql" or "file"; empty selects redis
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	FileStoreDir   string
	HostSocket     string // unix socket of a host-side store daemon, if any

	// Reconciliation defaults applied to records that omit the field.
	DefaultBranchID string
	StandardTaxRate int

	// Rate limit applied to the API group, in requests per period.
	RateLimitCount  int64
	RateLimitPeriod time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("STORAGE_BACKEND", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("FILE_STORE_DIR", "./data")
	viper.SetDefault("HOST_SOCKET", "")
	viper.SetDefault("DEFAULT_BRANCH_ID", "main")
	viper.SetDefault("STANDARD_TAX_RATE", 10)
	viper.SetDefault("RATE_LIMIT_COUNT", 300)
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. API authentication is disabled.")
	}

	cfg.StorageBackend = viper.GetString("STORAGE_BACKEND")
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.FileStoreDir = viper.GetString("FILE_STORE_DIR")
	cfg.HostSocket = viper.GetString("HOST_SOCKET")

	cfg.DefaultBranchID = viper.GetString("DEFAULT_BRANCH_ID")
	cfg.StandardTaxRate = viper.GetInt("STANDARD_TAX_RATE")

	cfg.RateLimitCount = viper.GetInt64("RATE_LIMIT_COUNT")
	rateLimitPeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	rateLimitPeriod, err := time.ParseDuration(rateLimitPeriodStr)
	if err != nil {
		rateLimitPeriod = time.Minute
		if rateLimitPeriodStr != "" {
			log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", rateLimitPeriodStr, rateLimitPeriod.String())
		}
	}
	cfg.RateLimitPeriod = rateLimitPeriod

	return cfg, nil
}
