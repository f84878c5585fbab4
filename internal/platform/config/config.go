package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	Env     string // "development" or "production"

	JWTSecret []byte
	TokenTTL  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NotificationQueueName string

	CORSAllowedOrigins []string
	StaticDir          string
}

// Load reads configuration from the environment (optionally a .env file).
// JWT_SECRET has no fallback: running without one is a deployment
// misconfiguration, not something to paper over with a public constant.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	cfg := &Config{
		APIPort:               getEnv("API_PORT", "8080"),
		Env:                   getEnv("APP_ENV", "development"),
		JWTSecret:             []byte(secret),
		TokenTTL:              time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 168)) * time.Hour,
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "user"),
		DBPassword:            getEnv("DB_PASSWORD", "password"),
		DBName:                getEnv("DB_NAME", "mockmatch_db"),
		DBSslMode:             getEnv("DB_SSLMODE", "disable"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		NotificationQueueName: getEnv("NOTIFICATION_QUEUE_NAME", "notification_events_queue"),
		CORSAllowedOrigins:    []string{getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000")},
		StaticDir:             getEnv("STATIC_DIR", "./web"),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
