package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Token issuance modes supported by the credential layer.
const (
	TokenModeUnsigned = "unsigned"
	TokenModeSigned   = "signed"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string
	Port               string
	GoEnv              string
	JWTSecret          string
	TokenMode          string // "unsigned" or "signed"
	TokenTTL           time.Duration
	AdminUsername      string
	AdminSecret        string
	ReportsDir         string
	ArtifactBackend    string // "local" or "s3"
	ImageFetchTimeout  time.Duration
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	LogLevel           string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			// In production the environment is set directly, so missing
			// .env files are fine
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Port:               getEnv("PORT", "8080"),
		GoEnv:              env,
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenMode:          getEnv("TOKEN_MODE", TokenModeSigned),
		TokenTTL:           12 * time.Hour,
		AdminUsername:      getEnv("ADMIN_USERNAME", ""),
		AdminSecret:        getEnv("ADMIN_SECRET", ""),
		ReportsDir:         getEnv("REPORTS_DIR", "./reports"),
		ArtifactBackend:    getEnv("ARTIFACT_BACKEND", "local"),
		ImageFetchTimeout:  15 * time.Second,
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.TokenMode != TokenModeUnsigned && c.TokenMode != TokenModeSigned {
		return fmt.Errorf("TOKEN_MODE must be %q or %q", TokenModeUnsigned, TokenModeSigned)
	}
	if c.TokenMode == TokenModeSigned && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when TOKEN_MODE is %q", TokenModeSigned)
	}
	if c.ArtifactBackend == "s3" && c.AWSS3Bucket == "" {
		return fmt.Errorf("AWS_S3_BUCKET is required when ARTIFACT_BACKEND is s3")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
