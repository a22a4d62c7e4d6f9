package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"profrag-ai/internal/config"
	"profrag-ai/internal/http"
	"profrag-ai/internal/indexer"
	"profrag-ai/internal/llm"
	"profrag-ai/internal/rag"
	"profrag-ai/internal/service"
	"profrag-ai/internal/storage"
	"profrag-ai/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers natural-language questions about professors using RAG
// (Retrieval-Augmented Generation) over a vector index of professor reviews,
// streaming each answer back as it is generated.
//
// swagger:meta

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	reviewRepo := storage.NewReviewRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testVector, err := embedder.Embed(ctx, "test")
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testVector) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testVector))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create ingestion pipeline
	indexerPipeline := indexer.NewPipeline(
		reviewRepo,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		cfg.QdrantNamespace,
	)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Create RAG pipeline with injected clients
	pipeline := rag.NewPipeline(embedder, vectorStore, llmClient, rag.Options{
		Collection:   cfg.QdrantCollection,
		Namespace:    cfg.QdrantNamespace,
		SystemPrompt: cfg.SystemPrompt,
		TopK:         cfg.TopK,
		StageTimeout: cfg.StageTimeout,
	})
	slog.Info("RAG pipeline initialized", "collection", cfg.QdrantCollection, "namespace", cfg.QdrantNamespace, "top_k", cfg.TopK)

	chatService := service.NewChatService(pipeline)

	// Create router with dependencies
	deps := &http.Deps{
		ChatService:     chatService,
		ReviewRepo:      reviewRepo,
		IndexerPipeline: indexerPipeline,
		VectorStore:     vectorStore,
		CollectionName:  cfg.QdrantCollection,
		DatasetPath:     cfg.DatasetPath,
	}
	router := http.NewRouter(deps)

	// Ingest the dataset in the background once the router is ready
	if cfg.DatasetPath != "" {
		go func() {
			indexCtx := context.Background()
			slog.Info("Starting background dataset ingestion", "path", cfg.DatasetPath)
			indexed, err := indexerPipeline.IndexDataset(indexCtx, cfg.DatasetPath)
			if err != nil {
				slog.Error("Dataset ingestion completed with errors", "indexed", indexed, "error", err)
			} else {
				slog.Info("Dataset ingestion completed", "indexed", indexed)
			}
		}()
	}

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
