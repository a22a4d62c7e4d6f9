package rag

import (
	"context"

	"profrag-ai/internal/llm"
)

// Stream is a single-pass sequence of generated text chunks. The producer
// goroutine pushes chunks as the model emits them; the consumer ranges over
// Chunks and then checks Err to distinguish normal completion from failure.
//
//	for chunk := range stream.Chunks() { ... }
//	if err := stream.Err(); err != nil { ... }
//
// Chunks delivered before a failure are not retracted. Close cancels the
// upstream call; it is safe to call at any time and more than once.
type Stream struct {
	chunks chan string
	cancel context.CancelFunc

	// err is written by the producer before chunks is closed, so reading it
	// after the channel closes is race-free.
	err error
}

// NewStream starts a completion stream for the given prompt messages. The
// producer goroutine begins immediately; the returned stream must be drained
// or closed.
func NewStream(ctx context.Context, completer Completer, messages []llm.Message, params llm.ChatParams) *Stream {
	streamCtx, cancel := context.WithCancel(ctx)
	s := &Stream{
		chunks: make(chan string),
		cancel: cancel,
	}
	go s.run(streamCtx, completer, messages, params)
	return s
}

func (s *Stream) run(ctx context.Context, completer Completer, messages []llm.Message, params llm.ChatParams) {
	defer s.cancel()

	delivered := 0
	err := completer.StreamChat(ctx, messages, params, func(chunk string) error {
		select {
		case s.chunks <- chunk:
			delivered++
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if err != nil {
		s.err = &GenerationError{Delivered: delivered, Err: err}
	}
	close(s.chunks)
}

// Chunks returns the channel of generated text fragments. The channel closes
// when the model completes or the stream fails; chunks have no semantic
// boundaries and may split words arbitrarily.
func (s *Stream) Chunks() <-chan string {
	return s.chunks
}

// Err reports how the stream ended. It must only be called after Chunks has
// been closed. A nil result means the model completed normally; otherwise
// the error is a *GenerationError carrying the delivered-chunk count.
func (s *Stream) Err() error {
	return s.err
}

// Close cancels the upstream completion call and releases its resources.
// Consumers that stop draining early must call it.
func (s *Stream) Close() {
	s.cancel()
}
