package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort       string
	DBDSN         string
	JWTSecret     string
	JWTExpiresMin int

	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string

	FrontendBaseURL string
	AppBaseURL      string

	PaymentAPIKey     string
	PaymentPrivateKey string
	PaymentBaseURL    string

	MetricsNamespace string
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	redisDB, _ := strconv.Atoi(get("REDIS_DB", "0"))
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		DBDSN:         must("DB_DSN"),
		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: expires,

		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "text"),

		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:   get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect: get("GOOGLE_REDIRECT_URL", ""),

		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),
		AppBaseURL:      get("APP_BASE_URL", "http://localhost:8080"),

		PaymentAPIKey:     get("PAYMENT_API_KEY", ""),
		PaymentPrivateKey: get("PAYMENT_PRIVATE_KEY", ""),
		PaymentBaseURL:    get("PAYMENT_BASE_URL", ""),

		MetricsNamespace: get("METRICS_NAMESPACE", "reselltrack"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
