package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Mail     MailConfig
	Storage  StorageConfig
	Geocoder GeocoderConfig
	Upload   UploadConfig
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET"`
	// TTL bounds both the token exp claim and the auth cookie lifetime.
	TTL time.Duration `env:"JWT_TTL, default=24h"`
	// CookieSecure marks the token cookie Secure; enable behind TLS.
	CookieSecure bool `env:"JWT_COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bootcamp_directory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	Domain  string `env:"MAILGUN_DOMAIN"`
	APIKey  string `env:"MAILGUN_API_KEY"`
	Sender  string `env:"MAIL_SENDER, default=noreply@bootcamp-directory.dev"`
	Workers int    `env:"MAIL_WORKERS, default=4"`
	// ResetURL is the public base for password-reset links; the raw reset
	// token is appended as the final path segment.
	ResetURL string `env:"MAIL_RESET_URL, default=http://localhost:8080/api/v1/auth/resetpassword"`
}

type StorageConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT, default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET, default=bootcamp-photos"`
	UseSSL    bool   `env:"MINIO_USE_SSL, default=false"`
}

type GeocoderConfig struct {
	BaseURL string `env:"GEOCODER_URL, default=https://api.mapquestapi.com/geocoding/v1/address"`
	APIKey  string `env:"GEOCODER_API_KEY"`
}

type UploadConfig struct {
	// MaxFileBytes caps bootcamp photo uploads.
	MaxFileBytes int64 `env:"MAX_FILE_UPLOAD, default=1000000"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
