package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Nitesh-Kaushik/backend/internal/utils"
)

// Config holds the application configuration.
// Secret fields have no envconfig tag: they are read from Docker secret files.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"debug"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// Database (PostgreSQL, credential store)
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" required:"true"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	DBPassword    string

	// Redis (rate limiter store)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string

	// JWT settings; access and refresh tokens are signed with separate secrets.
	AccessTokenSecret  string
	RefreshTokenSecret string
	PasswordPepper     string
	AccessTokenTTL     time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL    time.Duration `envconfig:"JWT_REFRESH_TOKEN_TTL" default:"240h"` // 10 days

	// Media storage (S3-compatible)
	S3Region        string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Bucket        string `envconfig:"S3_BUCKET" required:"true"`
	S3BaseEndpoint  string `envconfig:"S3_BASE_ENDPOINT"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL" required:"true"`
	S3AccessKey     string
	S3SecretKey     string

	// CORS settings
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig loads configuration from environment variables and secret files.
func LoadConfig(envFilePath string) (*Config, error) {
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		} else {
			log.Printf("Loaded configuration from %s", envFilePath)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	// Required secrets
	var loadErr error
	cfg.DBPassword, loadErr = utils.ReadSecret("db_password")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.AccessTokenSecret, loadErr = utils.ReadSecret("access_token_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.RefreshTokenSecret, loadErr = utils.ReadSecret("refresh_token_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.PasswordPepper, loadErr = utils.ReadSecret("password_pepper")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.S3AccessKey, loadErr = utils.ReadSecret("s3_access_key")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.S3SecretKey, loadErr = utils.ReadSecret("s3_secret_key")
	if loadErr != nil {
		return nil, loadErr
	}

	// Optional secrets
	redisPass, err := utils.ReadSecret("redis_password")
	if err == nil {
		cfg.RedisPassword = redisPass
		log.Println("Redis password loaded from secret.")
	} else {
		log.Printf("Optional secret 'redis_password' not found or failed to read: %v. Assuming no password.", err)
	}

	log.Println("Configuration loaded successfully (secrets read from files).")
	return &cfg, nil
}
