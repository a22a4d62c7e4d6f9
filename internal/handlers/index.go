package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"profrag-ai/internal/contextutil"
	"profrag-ai/internal/indexer"
)

// IndexHandler handles HTTP requests for triggering dataset re-ingestion.
type IndexHandler struct {
	indexerPipeline *indexer.Pipeline
	datasetPath     string
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(indexerPipeline *indexer.Pipeline, datasetPath string) *IndexHandler {
	return &IndexHandler{
		indexerPipeline: indexerPipeline,
		datasetPath:     datasetPath,
	}
}

// IndexResponse represents the response from the index endpoint.
//
// swagger:model IndexResponse
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP triggers ingestion of the configured dataset file. Ingestion
// runs in the background so the request returns immediately.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.datasetPath == "" {
		logger.WarnContext(ctx, "no dataset path configured")
		writeError(w, http.StatusConflict, "No dataset path configured")
		return
	}

	logger.InfoContext(ctx, "dataset ingestion triggered via API", "path", h.datasetPath)

	// Background context so ingestion survives the HTTP request.
	go func() {
		indexCtx := context.Background()
		indexed, err := h.indexerPipeline.IndexDataset(indexCtx, h.datasetPath)
		if err != nil {
			logger.ErrorContext(indexCtx, "dataset ingestion completed with errors", "indexed", indexed, "error", err)
		} else {
			logger.InfoContext(indexCtx, "dataset ingestion completed", "indexed", indexed)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(IndexResponse{
		Message: "Dataset ingestion started",
		Status:  "accepted",
	})
}
