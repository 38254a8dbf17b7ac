package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"checklist-app-go/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	Env                string
	CORSAllowedOrigins []string
	Store              StoreConfig
	Firebase           FirebaseConfig
	Upload             UploadConfig
}

type StoreConfig struct {
	// Driver selects the persistence backend: "firestore" (default) or
	// "memory" for local development without credentials.
	Driver    string
	OpTimeout time.Duration
}

type FirebaseConfig struct {
	// CredentialsJSON holds the service account JSON inline; it wins over
	// CredentialsPath when both are set.
	CredentialsJSON string
	CredentialsPath string
	ProjectID       string
	StorageBucket   string
}

type UploadConfig struct {
	MaxBytes     int64
	MaxImageEdge int
}

func Load(log logger.Logger) Config {
	if err := godotenv.Load(); err == nil {
		log.Info("config: loaded .env")
	}

	return Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Store: StoreConfig{
			Driver:    getEnv("STORE_DRIVER", "firestore"),
			OpTimeout: getEnvDuration("STORE_OP_TIMEOUT", 10*time.Second),
		},
		Firebase: FirebaseConfig{
			CredentialsJSON: getEnv("FIREBASE_CREDENTIALS", ""),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "firebase-credentials.json"),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		},
		Upload: UploadConfig{
			MaxBytes:     getEnvInt64("UPLOAD_MAX_BYTES", 10<<20),
			MaxImageEdge: getEnvInt("UPLOAD_MAX_IMAGE_EDGE", 1600),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	return result
}
