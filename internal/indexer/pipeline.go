package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"profrag-ai/internal/contextutil"
	"profrag-ai/internal/storage"
	"profrag-ai/internal/vectorstore"
)

// embedBatchSize bounds how many review texts go to the embeddings API per
// request during dataset ingestion.
const embedBatchSize = 32

// Embedder generates embeddings for a batch of texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline orchestrates the ingestion of professor reviews into SQLite and
// the vector store: normalize text, store the row, embed, upsert the point.
type Pipeline struct {
	reviewRepo  storage.ReviewStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	namespace   string
	normalizer  *plaintextNormalizer
	logger      *slog.Logger
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	reviewRepo storage.ReviewStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	namespace string,
) *Pipeline {
	return &Pipeline{
		reviewRepo:  reviewRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		namespace:   namespace,
		normalizer:  newPlaintextNormalizer(),
		logger:      slog.Default(),
	}
}

// reviewID derives the record ID from the review content. The same
// professor and review text always map to the same UUID, so re-ingesting a
// dataset never duplicates rows or points; an edited review gets a new ID
// and its stale predecessor is pruned on the next dataset run.
func reviewID(review DatasetReview) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(review.Professor+"\x00"+review.Review)).String()
}

// IndexReview ingests a single review: stores it in SQLite, embeds the
// normalized review text, and upserts the point into the vector store.
// Returns the record ID. A review already ingested (same professor and
// text) is left untouched and its existing ID returned.
func (p *Pipeline) IndexReview(ctx context.Context, review DatasetReview) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := review.Validate(); err != nil {
		return "", fmt.Errorf("invalid review: %w", err)
	}

	id := reviewID(review)

	existing, err := p.reviewRepo.GetByID(ctx, id)
	if err != nil && err != storage.ErrNotFound {
		return "", fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		logger.DebugContext(ctx, "review already indexed, skipping", "professor", review.Professor, "id", id)
		return id, nil
	}

	normalized := p.normalizer.Normalize(review.Review)

	embeddings, err := p.embedder.EmbedTexts(ctx, []string{normalized})
	if err != nil {
		return "", fmt.Errorf("failed to embed review: %w", err)
	}

	record := &storage.ReviewRecord{
		ID:         id,
		Professor:  review.Professor,
		Department: review.Department,
		Review:     review.Review,
		Timestamp:  review.Timestamp,
		Source:     storage.SourceAPI,
	}
	if review.Rating != nil {
		record.Rating = *review.Rating
		record.HasRating = true
	}
	if err := p.reviewRepo.Insert(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store review: %w", err)
	}

	point := vectorstore.Point{
		ID:   id,
		Vec:  embeddings[0],
		Meta: p.pointMeta(review),
	}
	if err := p.vectorStore.Upsert(ctx, p.collection, []vectorstore.Point{point}); err != nil {
		return "", fmt.Errorf("failed to upsert vector: %w", err)
	}

	logger.InfoContext(ctx, "indexed review", "professor", review.Professor, "id", id)
	return id, nil
}

// IndexDataset ingests every review in the dataset file at path. Reviews are
// embedded in batches; an invalid or failed record is logged and skipped so
// one bad row does not abort the load. Returns the number of reviews indexed.
func (p *Pipeline) IndexDataset(ctx context.Context, path string) (int, error) {
	logger := p.getLogger(ctx)

	dataset, err := LoadDataset(path)
	if err != nil {
		return 0, err
	}

	// Drop structurally invalid rows up front.
	reviews := make([]DatasetReview, 0, len(dataset.ProfessorReviews))
	for _, review := range dataset.ProfessorReviews {
		if err := review.Validate(); err != nil {
			logger.WarnContext(ctx, "skipping invalid dataset review", "error", err)
			continue
		}
		reviews = append(reviews, review)
	}

	logger.InfoContext(ctx, "starting dataset ingestion", "path", path, "reviews", len(reviews))

	indexed := 0
	for start := 0; start < len(reviews); start += embedBatchSize {
		select {
		case <-ctx.Done():
			return indexed, ctx.Err()
		default:
		}

		end := start + embedBatchSize
		if end > len(reviews) {
			end = len(reviews)
		}
		batch := reviews[start:end]

		n, err := p.indexBatch(ctx, batch)
		indexed += n
		if err != nil {
			logger.ErrorContext(ctx, "failed to index batch", "start", start, "error", err)
			continue
		}
	}

	if err := p.pruneStale(ctx, reviews); err != nil {
		logger.ErrorContext(ctx, "failed to prune stale reviews", "error", err)
	}

	logger.InfoContext(ctx, "dataset ingestion completed", "indexed", indexed, "total", len(reviews))
	return indexed, nil
}

// pruneStale removes dataset-sourced reviews whose content is no longer in
// the dataset, from SQLite and the vector store both. Reviews added through
// the API are never pruned.
func (p *Pipeline) pruneStale(ctx context.Context, reviews []DatasetReview) error {
	logger := p.getLogger(ctx)

	current := make(map[string]struct{}, len(reviews))
	for _, review := range reviews {
		current[reviewID(review)] = struct{}{}
	}

	storedIDs, err := p.reviewRepo.ListIDsBySource(ctx, storage.SourceDataset)
	if err != nil {
		return fmt.Errorf("failed to list dataset review IDs: %w", err)
	}

	var stale []string
	for _, id := range storedIDs {
		if _, ok := current[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	if err := p.vectorStore.Delete(ctx, p.collection, stale); err != nil {
		return fmt.Errorf("failed to delete stale points: %w", err)
	}
	if err := p.reviewRepo.DeleteByIDs(ctx, stale); err != nil {
		return fmt.Errorf("failed to delete stale reviews: %w", err)
	}

	logger.InfoContext(ctx, "pruned stale dataset reviews", "count", len(stale))
	return nil
}

// indexBatch embeds one batch of reviews and writes them to both stores.
// Reviews already present (by content-derived ID) are skipped before the
// embedding call, so unchanged datasets cost nothing to re-run.
func (p *Pipeline) indexBatch(ctx context.Context, batch []DatasetReview) (int, error) {
	logger := p.getLogger(ctx)

	fresh := make([]DatasetReview, 0, len(batch))
	ids := make([]string, 0, len(batch))
	for _, review := range batch {
		id := reviewID(review)

		existing, err := p.reviewRepo.GetByID(ctx, id)
		if err != nil && err != storage.ErrNotFound {
			return 0, fmt.Errorf("failed to check existing review: %w", err)
		}
		if existing != nil {
			logger.DebugContext(ctx, "review already indexed, skipping", "professor", review.Professor, "id", id)
			continue
		}

		fresh = append(fresh, review)
		ids = append(ids, id)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	texts := make([]string, len(fresh))
	for i, review := range fresh {
		texts[i] = p.normalizer.Normalize(review.Review)
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed batch: %w", err)
	}
	if len(embeddings) != len(fresh) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(fresh), len(embeddings))
	}

	points := make([]vectorstore.Point, 0, len(fresh))
	stored := 0
	for i, review := range fresh {
		record := &storage.ReviewRecord{
			ID:         ids[i],
			Professor:  review.Professor,
			Department: review.Department,
			Review:     review.Review,
			Timestamp:  review.Timestamp,
			Source:     storage.SourceDataset,
		}
		if review.Rating != nil {
			record.Rating = *review.Rating
			record.HasRating = true
		}

		if err := p.reviewRepo.Insert(ctx, record); err != nil {
			logger.WarnContext(ctx, "failed to store review, skipping", "professor", review.Professor, "error", err)
			continue
		}

		points = append(points, vectorstore.Point{
			ID:   ids[i],
			Vec:  embeddings[i],
			Meta: p.pointMeta(review),
		})
		stored++
	}

	if len(points) > 0 {
		if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
			return stored, fmt.Errorf("failed to upsert vectors: %w", err)
		}
	}

	return stored, nil
}

// pointMeta builds the Qdrant payload for a review. Optional fields the
// source record did not carry are omitted entirely, not written as zero
// values, so retrieval sees them as absent.
func (p *Pipeline) pointMeta(review DatasetReview) map[string]any {
	meta := map[string]any{
		"professor": review.Professor,
		"review":    review.Review,
	}
	if p.namespace != "" {
		meta["namespace"] = p.namespace
	}
	if review.Department != "" {
		meta["department"] = review.Department
	}
	if review.Rating != nil {
		meta["rating"] = *review.Rating
	}
	if review.Timestamp != "" {
		meta["timestamp"] = review.Timestamp
	}
	return meta
}

// getLogger extracts logger from context or returns default logger.
func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	if logger := contextutil.LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return p.logger
}
