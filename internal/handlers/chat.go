package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"profrag-ai/internal/contextutil"
	"profrag-ai/internal/rag"
	"profrag-ai/internal/service"
)

// ChatHandler handles HTTP requests for streaming RAG chat.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatMessage mirrors rag.ChatMessage for the HTTP boundary.
//
// swagger:model ChatMessage
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ServeHTTP handles a chat request. The body is a JSON array of messages
// (the whole conversation, last entry the user's question); the response is
// the generated answer as an unframed UTF-8 text stream, flushed chunk by
// chunk. An optional k query parameter overrides how many reviews are
// retrieved.
//
// Failures before the first chunk produce a JSON error status. A failure
// after output has started aborts the connection, so clients never mistake
// a truncated answer for a complete one.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var history []ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&history); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	k := 0
	if kParam := r.URL.Query().Get("k"); kParam != "" {
		parsed, err := strconv.Atoi(kParam)
		if err != nil || parsed < 1 || parsed > 10 {
			logger.WarnContext(ctx, "invalid k parameter", "k", kParam)
			writeError(w, http.StatusBadRequest, "k must be an integer between 1 and 10")
			return
		}
		k = parsed
	}

	req := rag.ChatRequest{
		History: make([]rag.ChatMessage, len(history)),
		K:       k,
	}
	for i, m := range history {
		req.History[i] = rag.ChatMessage{Role: m.Role, Content: m.Content}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	stream, err := h.chatService.StreamAnswer(ctx, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	// Disable proxy buffering so chunks reach the client as produced.
	w.Header().Set("X-Accel-Buffering", "no")

	wrote := false
	for chunk := range stream.Chunks() {
		if _, err := w.Write([]byte(chunk)); err != nil {
			logger.WarnContext(ctx, "client write failed, closing stream", "error", err)
			return
		}
		flusher.Flush()
		wrote = true
	}

	if err := stream.Err(); err != nil {
		var genErr *rag.GenerationError
		if errors.As(err, &genErr) && !genErr.MidStream() && !wrote {
			// Nothing was written yet, so the request can still fail cleanly.
			logger.ErrorContext(ctx, "generation failed before first chunk", "error", err)
			writeError(w, http.StatusBadGateway, "External service error")
			return
		}
		logger.ErrorContext(ctx, "generation failed mid-stream", "error", err)
		// Abort the connection so the truncation is visible to the client.
		panic(http.ErrAbortHandler)
	}

	logger.InfoContext(ctx, "chat stream completed", "history_len", len(history))
}

// handleServiceError maps service errors to HTTP status codes.
func (h *ChatHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := contextutil.LoggerFromContext(r.Context())
	logger.ErrorContext(r.Context(), "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, "Validation error: "+validationErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid conversation history")
	case errors.Is(err, service.ErrVectorStore):
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
	case errors.Is(err, service.ErrExternalService):
		writeError(w, http.StatusBadGateway, "External service error")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to process chat request")
	}
}
