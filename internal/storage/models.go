package storage

import "time"

// Review sources. Dataset rows are owned by the dataset file and may be
// pruned on re-ingest; API rows are never pruned automatically.
const (
	SourceDataset = "dataset"
	SourceAPI     = "api"
)

// ReviewRecord is a professor review as stored in SQLite. The same ID is
// used for the Qdrant point holding the review's embedding, so the two
// stores can be reconciled.
type ReviewRecord struct {
	ID         string // UUID (same as Qdrant point ID)
	Professor  string
	Department string  // empty when the source record carried none
	Rating     float64 // 0 when the source record carried none
	HasRating  bool
	Review     string
	Timestamp  string // source-supplied, opaque text
	Source     string // SourceDataset or SourceAPI
	CreatedAt  time.Time
}
