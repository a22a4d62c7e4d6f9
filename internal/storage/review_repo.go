package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_review_store.go -package=mocks profrag-ai/internal/storage ReviewStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// ReviewStore defines the interface for review storage operations.
type ReviewStore interface {
	// Insert stores a new review record.
	Insert(ctx context.Context, review *ReviewRecord) error
	// GetByID gets a review by its ID. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ReviewRecord, error)
	// ListByProfessor lists all reviews for a professor, newest first.
	ListByProfessor(ctx context.Context, professor string) ([]*ReviewRecord, error)
	// ListIDsBySource lists the IDs of all reviews with the given source.
	ListIDsBySource(ctx context.Context, source string) ([]string, error)
	// DeleteByIDs removes the reviews with the given IDs.
	DeleteByIDs(ctx context.Context, ids []string) error
	// Count returns the total number of stored reviews.
	Count(ctx context.Context) (int, error)
}

// ReviewRepo provides methods for review operations backed by SQLite.
// It implements the ReviewStore interface.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo creates a new ReviewRepo.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Insert stores a new review record.
func (r *ReviewRepo) Insert(ctx context.Context, review *ReviewRecord) error {
	var rating any
	if review.HasRating {
		rating = review.Rating
	}
	var department any
	if review.Department != "" {
		department = review.Department
	}
	var timestamp any
	if review.Timestamp != "" {
		timestamp = review.Timestamp
	}
	source := review.Source
	if source == "" {
		source = SourceAPI
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (id, professor, department, rating, review, review_timestamp, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ID, review.Professor, department, rating, review.Review, timestamp, source,
	)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// GetByID gets a review by its ID.
// Returns nil and ErrNotFound if not found.
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*ReviewRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, professor, department, rating, review, review_timestamp, source, created_at
		 FROM reviews WHERE id = ?`, id)

	review, err := scanReview(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query review: %w", err)
	}
	return review, nil
}

// ListByProfessor lists all reviews for a professor, newest first.
func (r *ReviewRepo) ListByProfessor(ctx context.Context, professor string) ([]*ReviewRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, professor, department, rating, review, review_timestamp, source, created_at
		 FROM reviews WHERE professor = ? ORDER BY created_at DESC`, professor)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var reviews []*ReviewRecord
	for rows.Next() {
		review, err := scanReview(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return reviews, nil
}

// ListIDsBySource lists the IDs of all reviews with the given source.
func (r *ReviewRepo) ListIDsBySource(ctx context.Context, source string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM reviews WHERE source = ?", source)
	if err != nil {
		return nil, fmt.Errorf("failed to query review IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan review ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review IDs: %w", err)
	}
	return ids, nil
}

// DeleteByIDs removes the reviews with the given IDs.
func (r *ReviewRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

// Count returns the total number of stored reviews.
func (r *ReviewRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// scanReview scans one review row, tolerating NULL optional columns.
func scanReview(scan func(dest ...any) error) (*ReviewRecord, error) {
	var review ReviewRecord
	var department sql.NullString
	var rating sql.NullFloat64
	var timestamp sql.NullString
	var createdAtStr string

	if err := scan(&review.ID, &review.Professor, &department, &rating, &review.Review, &timestamp, &review.Source, &createdAtStr); err != nil {
		return nil, err
	}

	review.Department = department.String
	review.Rating = rating.Float64
	review.HasRating = rating.Valid
	review.Timestamp = timestamp.String

	// SQLite DATETIME columns come back as strings in one of two formats.
	createdAt, err := time.Parse("2006-01-02 15:04:05", createdAtStr)
	if err != nil {
		createdAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
	}
	review.CreatedAt = createdAt

	return &review, nil
}
