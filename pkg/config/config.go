package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	External ExternalConfig
	CORS     CORSConfig
	Jobs     JobsConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	Debug        bool
}

// DatabaseConfig holds database configuration. URL is either a sqlite file
// path or a postgres DSN.
type DatabaseConfig struct {
	URL         string
	MaxIdleConn int
	MaxOpenConn int
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// RedisConfig holds cache configuration. An empty URL selects the in-memory
// cache.
type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// ExternalConfig selects and configures the external food providers.
type ExternalConfig struct {
	Providers         []string
	OpenFoodFactsURL  string
	USDAURL           string
	USDAAPIKey        string
	Timeout           time.Duration
	MinLocalResults   int
	DefaultSearchSize int
}

// CORSConfig holds allowed cross-origin settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// JobsConfig holds cron schedules for background jobs. An empty schedule
// disables the job.
type JobsConfig struct {
	DailyReportSchedule string
	CleanupSchedule     string
	ReminderSchedule    string
	RetentionDays       int
}

// Load loads configuration from environment variables, after reading an
// optional .env file in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8000"),
			ReadTimeout:  getEnvInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("WRITE_TIMEOUT", 15),
			Debug:        getEnvBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", "meal_planner.db"),
			MaxIdleConn: getEnvInt("DB_MAX_IDLE_CONN", 10),
			MaxOpenConn: getEnvInt("DB_MAX_OPEN_CONN", 100),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 15)) * time.Minute,
			RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			CacheTTL: getEnvDuration("SEARCH_CACHE_TTL", time.Hour),
		},
		External: ExternalConfig{
			Providers:         getEnvList("FOOD_PROVIDERS", []string{"catalog"}),
			OpenFoodFactsURL:  getEnv("OPENFOODFACTS_URL", "https://world.openfoodfacts.org"),
			USDAURL:           getEnv("USDA_URL", "https://api.nal.usda.gov/fdc/v1"),
			USDAAPIKey:        getEnv("USDA_API_KEY", ""),
			Timeout:           getEnvDuration("EXTERNAL_TIMEOUT", 5*time.Second),
			MinLocalResults:   getEnvInt("SEARCH_MIN_LOCAL_RESULTS", 5),
			DefaultSearchSize: getEnvInt("SEARCH_DEFAULT_LIMIT", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Jobs: JobsConfig{
			DailyReportSchedule: getEnv("JOB_DAILY_REPORT", "5 0 * * *"),
			CleanupSchedule:     getEnv("JOB_CLEANUP", "30 3 * * 0"),
			ReminderSchedule:    getEnv("JOB_REMINDERS", "0 * * * *"),
			RetentionDays:       getEnvInt("RETENTION_DAYS", 365),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
