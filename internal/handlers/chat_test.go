package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"profrag-ai/internal/llm"
	"profrag-ai/internal/rag"
	"profrag-ai/internal/service"
	"profrag-ai/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func streamOf(chunks ...string) *rag.Stream {
	completer := rag.CompleterFunc(func(ctx context.Context, messages []llm.Message, params llm.ChatParams, callback func(string) error) error {
		for _, c := range chunks {
			if err := callback(c); err != nil {
				return err
			}
		}
		return nil
	})
	return rag.NewStream(context.Background(), completer, nil, llm.ChatParams{})
}

func failingStream(after []string, failure error) *rag.Stream {
	completer := rag.CompleterFunc(func(ctx context.Context, messages []llm.Message, params llm.ChatParams, callback func(string) error) error {
		for _, c := range after {
			if err := callback(c); err != nil {
				return err
			}
		}
		return failure
	})
	return rag.NewStream(context.Background(), completer, nil, llm.ChatParams{})
}

func chatBody(t *testing.T, messages []ChatMessage) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(messages)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return bytes.NewBuffer(body)
}

func TestNewChatHandler(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockChatService := mocks.NewMockChatService(ctrl)
	handler := NewChatHandler(mockChatService)

	if handler == nil {
		t.Fatal("NewChatHandler() returned nil")
	}
	if handler.chatService != mockChatService {
		t.Error("NewChatHandler() chatService not set correctly")
	}
}

func TestChatHandler_ServeHTTP(t *testing.T) {
	validBody := []ChatMessage{{Role: "user", Content: "Who teaches algorithms?"}}

	tests := []struct {
		name       string
		method     string
		target     string
		body       *bytes.Buffer
		mockSetup  func(*mocks.MockChatService)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "successful stream",
			method: http.MethodPost,
			target: "/api/chat",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAnswer(gomock.Any(), gomock.Any()).
					Return(streamOf("Dr. Chen ", "teaches ", "algorithms."), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Dr. Chen teaches algorithms.",
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			target:     "/api/chat",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "invalid body",
			method:     http.MethodPost,
			target:     "/api/chat",
			body:       bytes.NewBufferString("{not an array}"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "k out of range",
			method:     http.MethodPost,
			target:     "/api/chat?k=11",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "k not an integer",
			method:     http.MethodPost,
			target:     "/api/chat?k=abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			target: "/api/chat",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAnswer(gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "history", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "vector store unavailable",
			method: http.MethodPost,
			target: "/api/chat",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAnswer(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: connection refused", service.ErrVectorStore))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:   "embedding service down",
			method: http.MethodPost,
			target: "/api/chat",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAnswer(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: bad status 503", service.ErrExternalService))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:   "unknown service error",
			method: http.MethodPost,
			target: "/api/chat",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAnswer(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("something odd"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockChatService := mocks.NewMockChatService(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockChatService)
			}

			handler := NewChatHandler(mockChatService)

			body := tt.body
			if body == nil {
				body = chatBody(t, validBody)
			}

			req := httptest.NewRequest(tt.method, tt.target, body)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestChatHandler_ServeHTTP_KForwarded(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockChatService := mocks.NewMockChatService(ctrl)
	mockChatService.EXPECT().
		StreamAnswer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req rag.ChatRequest) (*rag.Stream, error) {
			if req.K != 5 {
				t.Errorf("forwarded K = %d, want 5", req.K)
			}
			return streamOf("ok"), nil
		})

	handler := NewChatHandler(mockChatService)

	req := httptest.NewRequest(http.MethodPost, "/api/chat?k=5", chatBody(t, []ChatMessage{{Role: "user", Content: "q"}}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestChatHandler_ServeHTTP_StreamHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockChatService := mocks.NewMockChatService(ctrl)
	mockChatService.EXPECT().
		StreamAnswer(gomock.Any(), gomock.Any()).
		Return(streamOf("chunk"), nil)

	handler := NewChatHandler(mockChatService)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", chatBody(t, []ChatMessage{{Role: "user", Content: "q"}}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", got)
	}
	if got := w.Header().Get("X-Accel-Buffering"); got != "no" {
		t.Errorf("X-Accel-Buffering = %q, want no", got)
	}
	if !w.Flushed {
		t.Error("response was never flushed")
	}
}

func TestChatHandler_ServeHTTP_GenerationFailsBeforeFirstChunk(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockChatService := mocks.NewMockChatService(ctrl)
	mockChatService.EXPECT().
		StreamAnswer(gomock.Any(), gomock.Any()).
		Return(failingStream(nil, errors.New("model unavailable")), nil)

	handler := NewChatHandler(mockChatService)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", chatBody(t, []ChatMessage{{Role: "user", Content: "q"}}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	// Nothing streamed yet, so the failure becomes a clean error status.
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("error response is not JSON: %v (body: %s)", err, w.Body.String())
	}
	if errResp.Error == "" {
		t.Error("error response has no message")
	}
}

func TestChatHandler_ServeHTTP_MidStreamFailureAbortsConnection(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockChatService := mocks.NewMockChatService(ctrl)
	mockChatService.EXPECT().
		StreamAnswer(gomock.Any(), gomock.Any()).
		Return(failingStream([]string{"partial "}, errors.New("connection reset")), nil)

	handler := NewChatHandler(mockChatService)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", chatBody(t, []ChatMessage{{Role: "user", Content: "q"}}))
	w := httptest.NewRecorder()

	defer func() {
		r := recover()
		if r != http.ErrAbortHandler {
			t.Errorf("recover() = %v, want http.ErrAbortHandler", r)
		}
		// The partial output went out before the abort.
		if w.Body.String() != "partial " {
			t.Errorf("body = %q, want %q", w.Body.String(), "partial ")
		}
	}()

	handler.ServeHTTP(w, req)
}
