package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GitHub   GitHubConfig
	Session  SessionConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Sync     SyncConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Organization string
	// Token is the server-side token used by the issue poller, which runs
	// outside any user session.
	Token string
}

type SessionConfig struct {
	Secret string
}

type AdminConfig struct {
	Password string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SyncConfig struct {
	// DebounceSeconds collapses bursts of admin point edits into one write.
	DebounceSeconds int
	// IssuePollSeconds is the fixed interval of the open-issue poller.
	IssuePollSeconds int
	// IssueCacheSeconds is the freshness window of cached issue listings.
	IssueCacheSeconds int
	// MinRateRemaining is the core-quota floor below which the fetcher
	// serves stored stats instead of hitting the GitHub API.
	MinRateRemaining int
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./skillfest.db"),
		},
		GitHub: GitHubConfig{
			ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
			ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
			CallbackURL:  getEnv("GITHUB_CALLBACK_URL", ""),
			Organization: getEnv("GITHUB_ORG", "nst-sdc"),
			Token:        getEnv("GITHUB_TOKEN", ""),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "default-secret-key"),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Sync: SyncConfig{
			DebounceSeconds:   getEnvAsInt("POINTS_DEBOUNCE_SECONDS", 1),
			IssuePollSeconds:  getEnvAsInt("ISSUE_POLL_SECONDS", 30),
			IssueCacheSeconds: getEnvAsInt("ISSUE_CACHE_SECONDS", 300),
			MinRateRemaining:  getEnvAsInt("MIN_RATE_REMAINING", 20),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
