package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort      int
	DBHost       string
	DBPort       int
	DBUser       string
	DBPassword   string
	DBName       string
	DBNameTest   string
	RedisHost    string
	RedisPort    int
	JWTSecret    string
	RateLimitMax int
	LogDir       string
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using environment only")
		}
	}

	return Config{
		AppPort:      envInt("APP_PORT", 3004),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       envInt("DB_PORT", 5432),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBNameTest:   os.Getenv("DB_NAME_TEST"),
		RedisHost:    os.Getenv("REDIS_HOST"),
		RedisPort:    envInt("REDIS_PORT", 6379),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RateLimitMax: envInt("RATE_LIMIT_MAX", 100),
		LogDir:       envString("LOG_DIR", "logs"),
	}
}

// Validate reports every setting the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.DBHost == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DBUser == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.AppPort <= 0 {
		errs = append(errs, fmt.Errorf("APP_PORT must be positive, got %d", c.AppPort))
	}
	return errors.Join(errs...)
}

// RedisEnabled is false when no REDIS_HOST is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
