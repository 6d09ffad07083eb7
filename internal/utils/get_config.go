package utils

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppName        string `yaml:"APP_NAME"`
	AppVersion     string `yaml:"APP_VERSION"`
	AppPort        string `yaml:"APP_PORT"`
	AppURL         string `yaml:"APP_URL"`
	AllowedOrigins string `yaml:"ALLOWED_ORIGINS"`
	RateLimitMax   string `yaml:"RATE_LIMIT_MAX"`
	LogLevel       string `yaml:"LOG_LEVEL"`
	LogFile        string `yaml:"LOG_FILE"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// Cache
	RedisURL string `yaml:"REDIS_URL"`

	// JWT
	JWTSecret       string `yaml:"JWT_SECRET"`
	AccessTokenTTL  string `yaml:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL string `yaml:"REFRESH_TOKEN_TTL"`

	// Upstream lookups
	OpenFoodFactsURL       string `yaml:"OPEN_FOOD_FACTS_URL"`
	OpenFoodFactsUserAgent string `yaml:"OPEN_FOOD_FACTS_USER_AGENT"`
	SpoonacularURL         string `yaml:"SPOONACULAR_URL"`
	SpoonacularAPIKey      string `yaml:"SPOONACULAR_API_KEY"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config   Config
	configMu sync.RWMutex
)

// LoadConfig reads config.yaml and .env when they exist. Environment
// variables always win over the yaml file.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnw("failed to load .env", "error", err)
	}

	var cfg Config
	file, err := os.ReadFile("config.yaml")
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			log.Warnw("failed to parse config.yaml", "error", err)
		}
	case !os.IsNotExist(err):
		log.Warnw("failed to read config.yaml", "error", err)
	}

	configMu.Lock()
	config = cfg
	configMu.Unlock()
}

func lookupFile(key string) string {
	configMu.RLock()
	defer configMu.RUnlock()

	switch key {
	case "APP_NAME":
		return config.AppName
	case "APP_VERSION":
		return config.AppVersion
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "ALLOWED_ORIGINS":
		return config.AllowedOrigins
	case "RATE_LIMIT_MAX":
		return config.RateLimitMax
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FILE":
		return config.LogFile
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "REDIS_URL":
		return config.RedisURL
	case "JWT_SECRET":
		return config.JWTSecret
	case "ACCESS_TOKEN_TTL":
		return config.AccessTokenTTL
	case "REFRESH_TOKEN_TTL":
		return config.RefreshTokenTTL
	case "OPEN_FOOD_FACTS_URL":
		return config.OpenFoodFactsURL
	case "OPEN_FOOD_FACTS_USER_AGENT":
		return config.OpenFoodFactsUserAgent
	case "SPOONACULAR_URL":
		return config.SpoonacularURL
	case "SPOONACULAR_API_KEY":
		return config.SpoonacularAPIKey
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return lookupFile(key)
}

// GetConfigDefault returns def when key is unset.
func GetConfigDefault(key, def string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return def
}

func GetConfigInt(key string, def int) int {
	raw := GetConfig(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnw("invalid integer config", "key", key, "value", raw)
		return def
	}
	return v
}

func GetConfigBool(key string, def bool) bool {
	raw := GetConfig(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warnw("invalid boolean config", "key", key, "value", raw)
		return def
	}
	return v
}

// GetConfigDuration parses values such as "30m" or "168h".
func GetConfigDuration(key string, def time.Duration) time.Duration {
	raw := GetConfig(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnw("invalid duration config", "key", key, "value", raw)
		return def
	}
	return v
}
