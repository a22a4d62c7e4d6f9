package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"profrag-ai/internal/handlers"
	"profrag-ai/internal/indexer"
	"profrag-ai/internal/service"
	"profrag-ai/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService     service.ChatService
	ReviewRepo      storage.ReviewStore
	IndexerPipeline *indexer.Pipeline
	VectorStore     handlers.CollectionChecker
	CollectionName  string
	DatasetPath     string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	reviewsHandler := handlers.NewReviewsHandler(deps.IndexerPipeline, deps.ReviewRepo)
	indexHandler := handlers.NewIndexHandler(deps.IndexerPipeline, deps.DatasetPath)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.ReviewRepo, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Post("/reviews", reviewsHandler.Create)
		r.Get("/reviews/{professor}", reviewsHandler.List)
		r.Method(http.MethodPost, "/index", indexHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
