package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"profrag-ai/internal/contextutil"
	"profrag-ai/internal/indexer"
	"profrag-ai/internal/storage"
)

// ReviewsHandler handles HTTP requests for adding and listing professor
// reviews.
type ReviewsHandler struct {
	indexerPipeline *indexer.Pipeline
	reviewRepo      storage.ReviewStore
}

// NewReviewsHandler creates a new ReviewsHandler.
func NewReviewsHandler(indexerPipeline *indexer.Pipeline, reviewRepo storage.ReviewStore) *ReviewsHandler {
	return &ReviewsHandler{
		indexerPipeline: indexerPipeline,
		reviewRepo:      reviewRepo,
	}
}

// CreateReviewRequest represents the request payload for adding a review.
//
// swagger:model CreateReviewRequest
type CreateReviewRequest struct {
	Professor  string   `json:"professor"`
	Department string   `json:"department,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Review     string   `json:"review"`
	Timestamp  string   `json:"timestamp,omitempty"`
}

// CreateReviewResponse represents the response after adding a review.
//
// swagger:model CreateReviewResponse
type CreateReviewResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ReviewResponse represents a stored review in list responses.
//
// swagger:model ReviewResponse
type ReviewResponse struct {
	ID         string   `json:"id"`
	Professor  string   `json:"professor"`
	Department string   `json:"department,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Review     string   `json:"review"`
	Timestamp  string   `json:"timestamp,omitempty"`
}

// Create handles POST requests that add one review: it is stored, embedded,
// and upserted into the vector index in one call.
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review := indexer.DatasetReview{
		Professor:  req.Professor,
		Department: req.Department,
		Rating:     req.Rating,
		Review:     req.Review,
		Timestamp:  req.Timestamp,
	}
	if err := review.Validate(); err != nil {
		logger.WarnContext(ctx, "invalid review", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.indexerPipeline.IndexReview(ctx, review)
	if err != nil {
		logger.ErrorContext(ctx, "failed to index review", "professor", req.Professor, "error", err)
		writeError(w, http.StatusBadGateway, "Failed to index review")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(CreateReviewResponse{
		ID:     id,
		Status: "indexed",
	})
}

// List handles GET requests for the stored reviews of one professor.
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	professor := chi.URLParam(r, "professor")
	if professor == "" {
		writeError(w, http.StatusBadRequest, "Professor name is required")
		return
	}

	records, err := h.reviewRepo.ListByProfessor(ctx, professor)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list reviews", "professor", professor, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list reviews")
		return
	}

	reviews := make([]ReviewResponse, 0, len(records))
	for _, rec := range records {
		resp := ReviewResponse{
			ID:         rec.ID,
			Professor:  rec.Professor,
			Department: rec.Department,
			Review:     rec.Review,
			Timestamp:  rec.Timestamp,
		}
		if rec.HasRating {
			rating := rec.Rating
			resp.Rating = &rating
		}
		reviews = append(reviews, resp)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reviews); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
