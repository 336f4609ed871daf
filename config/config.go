package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	CORS_ORIGIN  string
	APP_BASE_URL string
	FRONTEND_URL string

	// Access tokens are minutes-only; action and refresh lifetimes are an
	// amount + unit pair (seconds/minutes/hours/days).
	ACCESS_TOKEN_TTL_MIN int

	REFRESH_TOKEN_TTL_AMOUNT int
	REFRESH_TOKEN_TTL_UNIT   string

	VERIFY_TOKEN_TTL_AMOUNT int
	VERIFY_TOKEN_TTL_UNIT   string

	RESET_TOKEN_TTL_AMOUNT int
	RESET_TOKEN_TTL_UNIT   string

	MAX_PAGE_LIMIT int

	SMTP_FROM     string
	SMTP_PASSWORD string
	SMTP_HOST     string
	SMTP_PORT     string

	S3_BUCKET     string
	S3_REGION     string
	S3_ACCESS_KEY string
	S3_SECRET_KEY string
	S3_ENDPOINT   string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")
	APP_BASE_URL = getEnv("APP_BASE_URL", "http://localhost:"+PORT)
	FRONTEND_URL = getEnv("FRONTEND_URL", "http://localhost:5173")

	ACCESS_TOKEN_TTL_MIN = getEnvInt("ACCESS_TOKEN_TTL_MIN", 15)

	REFRESH_TOKEN_TTL_AMOUNT = getEnvInt("REFRESH_TOKEN_TTL_AMOUNT", 7)
	REFRESH_TOKEN_TTL_UNIT = getEnv("REFRESH_TOKEN_TTL_UNIT", "days")

	VERIFY_TOKEN_TTL_AMOUNT = getEnvInt("VERIFY_TOKEN_TTL_AMOUNT", 24)
	VERIFY_TOKEN_TTL_UNIT = getEnv("VERIFY_TOKEN_TTL_UNIT", "hours")

	RESET_TOKEN_TTL_AMOUNT = getEnvInt("RESET_TOKEN_TTL_AMOUNT", 1)
	RESET_TOKEN_TTL_UNIT = getEnv("RESET_TOKEN_TTL_UNIT", "hours")

	MAX_PAGE_LIMIT = getEnvInt("MAX_PAGE_LIMIT", 100)

	SMTP_FROM = getEnv("SMTP_FROM", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")
	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getEnv("SMTP_PORT", "587")

	S3_BUCKET = getEnv("S3_BUCKET", "")
	S3_REGION = getEnv("S3_REGION", "us-east-1")
	S3_ACCESS_KEY = getEnv("S3_ACCESS_KEY", "")
	S3_SECRET_KEY = getEnv("S3_SECRET_KEY", "")
	S3_ENDPOINT = getEnv("S3_ENDPOINT", "")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer, got %q", key, value)
	}
	return n
}
