package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Checkout CheckoutConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        string
	FrontendURL string
	BodyLimitMB int
}

type MongoConfig struct {
	URI          string
	Database     string
	Transactions bool
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// StorageConfig selects where uploaded product images end up.
// Driver is one of "local", "minio" or "s3".
type StorageConfig struct {
	Driver    string
	UploadDir string
	URLPrefix string
	Minio     MinioConfig
	S3        S3Config
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type S3Config struct {
	Bucket string
}

// CheckoutConfig controls how checkout treats cart lines that no longer
// match the catalog.
type CheckoutConfig struct {
	MissingProduct string // "skip" | "reject"
	MissingSize    string // "zero" | "skip" | "reject"
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "4000"),
			FrontendURL: getEnv("FRONTEND_URL", "*"),
			BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 20),
		},
		Mongo: MongoConfig{
			URI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:     getEnv("MONGO_DB", "storefront"),
			Transactions: getEnvBool("MONGO_TRANSACTIONS", true),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  getEnvDuration("JWT_TTL", 24*time.Hour),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
			URLPrefix: "/uploads",
			Minio: MinioConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("MINIO_BUCKET", "product-images"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			S3: S3Config{
				Bucket: os.Getenv("S3_BUCKET"),
			},
		},
		Checkout: CheckoutConfig{
			MissingProduct: strings.ToLower(getEnv("CHECKOUT_MISSING_PRODUCT", "skip")),
			MissingSize:    strings.ToLower(getEnv("CHECKOUT_MISSING_SIZE", "zero")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch c.Storage.Driver {
	case "local", "minio":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Checkout.MissingProduct {
	case "skip", "reject":
	default:
		return fmt.Errorf("CHECKOUT_MISSING_PRODUCT must be skip or reject, got %q", c.Checkout.MissingProduct)
	}

	switch c.Checkout.MissingSize {
	case "zero", "skip", "reject":
	default:
		return fmt.Errorf("CHECKOUT_MISSING_SIZE must be zero, skip or reject, got %q", c.Checkout.MissingSize)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		fmt.Printf("Warning: invalid duration for %s, using default\n", key)
	}
	return defaultValue
}
