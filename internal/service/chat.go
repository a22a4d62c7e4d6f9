package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService profrag-ai/internal/service ChatService,ResponsePipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"profrag-ai/internal/contextutil"
	"profrag-ai/internal/rag"
)

// ResponsePipeline is the RAG pipeline as consumed by this layer.
type ResponsePipeline interface {
	Respond(ctx context.Context, req rag.ChatRequest) (*rag.Stream, error)
}

// ChatService answers conversations with a streamed, retrieval-grounded
// reply.
type ChatService interface {
	// StreamAnswer runs the RAG pipeline for the conversation and returns
	// the answer stream. Errors returned here occurred before any output
	// was produced; generation errors are reported through the stream.
	StreamAnswer(ctx context.Context, req rag.ChatRequest) (*rag.Stream, error)
}

// chatService implements ChatService.
type chatService struct {
	pipeline ResponsePipeline
	logger   *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(pipeline ResponsePipeline) ChatService {
	return &chatService{
		pipeline: pipeline,
		logger:   slog.Default(),
	}
}

// StreamAnswer runs the pipeline and maps its failures onto the service
// error vocabulary the HTTP layer understands.
func (s *chatService) StreamAnswer(ctx context.Context, req rag.ChatRequest) (*rag.Stream, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(req.History) == 0 {
		logger.WarnContext(ctx, "empty history in chat request")
		return nil, &ValidationError{
			Field:   "history",
			Message: "cannot be empty",
		}
	}

	stream, err := s.pipeline.Respond(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed before streaming", "error", err)
		switch {
		case errors.Is(err, rag.ErrInvalidHistory):
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		case errors.Is(err, rag.ErrIndexQuery):
			return nil, fmt.Errorf("%w: %s", ErrVectorStore, err)
		case errors.Is(err, rag.ErrEmbedding):
			return nil, fmt.Errorf("%w: %s", ErrExternalService, err)
		default:
			return nil, WrapError(err, "failed to answer chat")
		}
	}

	logger.InfoContext(ctx, "chat stream started", "history_len", len(req.History))
	return stream, nil
}
