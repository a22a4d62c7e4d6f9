package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clients.go -package=mocks profrag-ai/internal/rag Embedder,Completer

import (
	"context"
	"fmt"
	"time"

	"profrag-ai/internal/contextutil"
	"profrag-ai/internal/llm"
	"profrag-ai/internal/vectorstore"
)

// DefaultSystemPrompt instructs the model to answer professor questions from
// the retrieved reviews. Overridable via config.
const DefaultSystemPrompt = "You are a helpful assistant that answers questions about professors " +
	"using the review excerpts appended to the user's message. Ground every claim in those reviews: " +
	"mention professor names, departments, and ratings when they are relevant, and say so plainly " +
	"when the reviews do not contain enough information to answer. Do not invent professors or ratings."

const (
	defaultTopK         = 3
	maxTopK             = 10
	defaultStageTimeout = 15 * time.Second
)

// Embedder converts text into a fixed-dimension vector. Implementations must
// be safe for concurrent use; the embeddings client is.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer streams a chat completion, invoking callback once per chunk.
// A callback error aborts the stream and is returned. Implementations must
// be safe for concurrent use; the LLM client is.
type Completer interface {
	StreamChat(ctx context.Context, messages []llm.Message, params llm.ChatParams, callback func(chunk string) error) error
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, messages []llm.Message, params llm.ChatParams, callback func(chunk string) error) error

// StreamChat calls f.
func (f CompleterFunc) StreamChat(ctx context.Context, messages []llm.Message, params llm.ChatParams, callback func(chunk string) error) error {
	return f(ctx, messages, params, callback)
}

// Options configures a Pipeline. Zero values fall back to defaults.
type Options struct {
	// Collection is the vector store collection holding review points.
	Collection string
	// Namespace scopes retrieval to points tagged with this namespace
	// payload field. Empty means no namespace filtering.
	Namespace string
	// SystemPrompt is the system message for every request.
	SystemPrompt string
	// TopK is the default number of records retrieved per request.
	TopK int
	// StageTimeout bounds the embedding and search calls individually.
	StageTimeout time.Duration
}

// Pipeline answers conversation requests with retrieval-augmented streaming
// generation: embed the last user message, fetch the nearest reviews, append
// them to the prompt, and relay the model's output chunk by chunk.
//
// A Pipeline holds no per-request state and is safe for concurrent use as
// long as its injected clients are.
type Pipeline struct {
	embedder  Embedder
	store     vectorstore.VectorStore
	completer Completer
	opts      Options
}

// NewPipeline creates a pipeline with explicitly injected clients.
func NewPipeline(embedder Embedder, store vectorstore.VectorStore, completer Completer, opts Options) *Pipeline {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}
	if opts.TopK <= 0 {
		opts.TopK = defaultTopK
	}
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = defaultStageTimeout
	}
	return &Pipeline{
		embedder:  embedder,
		store:     store,
		completer: completer,
		opts:      opts,
	}
}

// Respond runs the full pipeline for one request and returns the answer
// stream. Stages run strictly in order; any failure up to and including
// prompt assembly is returned here, before any output exists. Generation
// failures are reported through the stream's Err, except that the HTTP
// layer can still fail the request when Err carries a GenerationError with
// no delivered chunks.
//
// The stream is bound to ctx: cancelling it (for example when the caller
// disconnects) cancels the upstream completion call.
func (p *Pipeline) Respond(ctx context.Context, req ChatRequest) (*Stream, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := ValidateHistory(req.History); err != nil {
		return nil, err
	}

	k := req.K
	if k <= 0 {
		k = p.opts.TopK
	}
	if k > maxTopK {
		k = maxTopK
	}

	query := req.History[len(req.History)-1].Content

	embedCtx, cancelEmbed := context.WithTimeout(ctx, p.opts.StageTimeout)
	vector, err := p.embedder.Embed(embedCtx, query)
	cancelEmbed()
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	var filters map[string]any
	if p.opts.Namespace != "" {
		filters = map[string]any{"namespace": p.opts.Namespace}
	}

	searchCtx, cancelSearch := context.WithTimeout(ctx, p.opts.StageTimeout)
	results, err := p.store.Search(searchCtx, p.opts.Collection, vector, k, filters)
	cancelSearch()
	if err != nil {
		logger.ErrorContext(ctx, "failed to query vector index", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrIndexQuery, err)
	}

	records := recordsFromResults(results)
	contextBlock := FormatRecords(records)

	messages, err := BuildPrompt(req.History, contextBlock, p.opts.SystemPrompt)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "pipeline retrieval completed",
		"history_len", len(req.History),
		"k", k,
		"records", len(records),
		"context_length", len(contextBlock),
	)

	return NewStream(ctx, p.completer, messages, llm.ChatParams{Temperature: 0.7}), nil
}

// recordsFromResults converts raw search results into typed records,
// preserving rank order and field absence.
func recordsFromResults(results []vectorstore.SearchResult) []RetrievedRecord {
	records := make([]RetrievedRecord, 0, len(results))
	for _, res := range results {
		id := res.PointID
		if professor := metaString(res.Meta, "professor"); professor != nil {
			id = *professor
		}
		records = append(records, RetrievedRecord{
			ID:         id,
			Score:      res.Score,
			Department: metaString(res.Meta, "department"),
			Rating:     metaFloat(res.Meta, "rating"),
			Review:     metaString(res.Meta, "review"),
			Timestamp:  metaString(res.Meta, "timestamp"),
		})
	}
	return records
}

func metaString(meta map[string]any, key string) *string {
	if meta == nil {
		return nil
	}
	if s, ok := meta[key].(string); ok {
		return &s
	}
	return nil
}

func metaFloat(meta map[string]any, key string) *float64 {
	if meta == nil {
		return nil
	}
	switch v := meta[key].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}
