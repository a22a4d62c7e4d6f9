package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	envVars := []string{
		"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY",
		"EMBEDDING_BASE_URL", "EMBEDDING_API_KEY", "EMBEDDING_MODEL",
		"DB_PATH", "DATASET_PATH",
		"QDRANT_URL", "QDRANT_COLLECTION", "QDRANT_NAMESPACE", "QDRANT_VECTOR_SIZE",
		"SYSTEM_PROMPT", "TOP_K", "STAGE_TIMEOUT_SECONDS",
		"API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "defaults with required vector size",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.QdrantVectorSize == 1536 &&
					cfg.QdrantCollection == "axionrag" &&
					cfg.QdrantNamespace == "arag" &&
					cfg.LLMModelName == "gpt-4o-mini" &&
					cfg.EmbeddingModelName == "text-embedding-3-small" &&
					cfg.TopK == 3 &&
					cfg.StageTimeout == 15*time.Second &&
					cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name:     "missing vector size",
			setupEnv: func(t *testing.T) {},
			wantErr:  true,
		},
		{
			name: "invalid vector size",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "not-a-number")
			},
			wantErr: true,
		},
		{
			name: "zero vector size",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "invalid top k",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("TOP_K", "-1")
			},
			wantErr: true,
		},
		{
			name: "invalid stage timeout",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("STAGE_TIMEOUT_SECONDS", "zero")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "custom values override defaults",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("DB_PATH", t.TempDir()+"/custom.db")
				setEnv("QDRANT_COLLECTION", "myreviews")
				setEnv("QDRANT_NAMESPACE", "staging")
				setEnv("TOP_K", "5")
				setEnv("STAGE_TIMEOUT_SECONDS", "30")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "json")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.QdrantVectorSize == 768 &&
					cfg.QdrantCollection == "myreviews" &&
					cfg.QdrantNamespace == "staging" &&
					cfg.TopK == 5 &&
					cfg.StageTimeout == 30*time.Second &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json"
			},
		},
		{
			name: "embedding key falls back to llm key",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("LLM_API_KEY", "shared-key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.EmbeddingAPIKey == "shared-key"
			},
		},
		{
			name: "separate embedding key kept",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "1536")
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("LLM_API_KEY", "llm-key")
				setEnv("EMBEDDING_API_KEY", "embed-key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.EmbeddingAPIKey == "embed-key"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				unsetEnv(key)
			}
			tt.setupEnv(t)

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config check failed: %+v", cfg)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	setEnv("TEST_GETENV_KEY", "value")
	defer unsetEnv("TEST_GETENV_KEY")

	if got := getEnv("TEST_GETENV_KEY", "fallback"); got != "value" {
		t.Errorf("getEnv() = %v, want value", got)
	}
	if got := getEnv("TEST_GETENV_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %v, want fallback", got)
	}
}
