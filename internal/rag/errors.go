package rag

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHistory is returned when the conversation history is empty
	// or its last entry is not a non-empty user message. No network calls
	// are made when this is returned.
	ErrInvalidHistory = errors.New("invalid conversation history")
	// ErrEmbedding is returned when the embedding service call fails.
	ErrEmbedding = errors.New("embedding service error")
	// ErrIndexQuery is returned when the vector index query fails.
	ErrIndexQuery = errors.New("vector index query error")
)

// GenerationError reports a failed completion stream. Delivered counts the
// chunks handed to the consumer before the failure; those chunks stand and
// are not retracted.
type GenerationError struct {
	// Delivered is the number of chunks delivered before the failure.
	Delivered int
	// Err is the underlying cause.
	Err error
}

func (e *GenerationError) Error() string {
	if e.Delivered > 0 {
		return fmt.Sprintf("generation failed after %d chunks: %v", e.Delivered, e.Err)
	}
	return fmt.Sprintf("generation failed before first chunk: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// MidStream reports whether the failure happened after output had already
// been delivered. A false result means the stream never started and the
// caller can still fail the whole request cleanly.
func (e *GenerationError) MidStream() bool {
	return e.Delivered > 0
}
