package indexer

import (
	"encoding/json"
	"fmt"
	"os"
)

// DatasetReview is one professor review in the ingestion dataset file.
type DatasetReview struct {
	Professor  string   `json:"professor"`
	Department string   `json:"department,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Review     string   `json:"review"`
	Timestamp  string   `json:"timestamp,omitempty"`
}

// Dataset is the ingestion file format: a top-level object wrapping the
// review list.
type Dataset struct {
	ProfessorReviews []DatasetReview `json:"professor_reviews"`
}

// LoadDataset reads and parses a dataset JSON file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file %s: %w", path, err)
	}

	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file %s: %w", path, err)
	}

	return &dataset, nil
}

// Validate reports the first structural problem in a review, if any.
func (r *DatasetReview) Validate() error {
	if r.Professor == "" {
		return fmt.Errorf("review has no professor name")
	}
	if r.Review == "" {
		return fmt.Errorf("review for %q has no review text", r.Professor)
	}
	return nil
}
