package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingAPIKey    string
	EmbeddingModelName string
	DBPath             string
	DatasetPath        string
	QdrantURL          string
	QdrantCollection   string
	QdrantNamespace    string
	QdrantVectorSize   int
	SystemPrompt       string
	TopK               int
	StageTimeout       time.Duration
	APIPort            string
	LogLevel           slog.Level
	LogFormat          string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env next to go.mod
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		DBPath:             getEnv("DB_PATH", "./data/profrag.db"),
		DatasetPath:        getEnv("DATASET_PATH", ""),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "axionrag"),
		QdrantNamespace:    getEnv("QDRANT_NAMESPACE", "arag"),
		SystemPrompt:       getEnv("SYSTEM_PROMPT", ""),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	// The embedding key defaults to the LLM key; original deployments use
	// one provider for both.
	if cfg.EmbeddingAPIKey == "" {
		cfg.EmbeddingAPIKey = cfg.LLMAPIKey
	}

	// QDRANT_VECTOR_SIZE must match the embedding model's output size and
	// the collection's configured dimensionality.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	topKStr := getEnv("TOP_K", "3")
	topK, err := strconv.Atoi(topKStr)
	if err != nil || topK <= 0 {
		return nil, fmt.Errorf("TOP_K must be a positive integer")
	}
	cfg.TopK = topK

	timeoutStr := getEnv("STAGE_TIMEOUT_SECONDS", "15")
	timeoutSecs, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSecs <= 0 {
		return nil, fmt.Errorf("STAGE_TIMEOUT_SECONDS must be a positive integer")
	}
	cfg.StageTimeout = time.Duration(timeoutSecs) * time.Second

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Create the data directory for the SQLite file if needed
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
