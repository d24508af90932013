package controller

import (
	"encoding/json"
	"net/http"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

const maxSearchTextBytes = 100 * 1024 // 100KB

// ReviewSearch embeds free text and returns the books whose review
// embeddings sit closest to it in the vector index.
type ReviewSearch struct {
	Embedder   datasources.Embedder
	Similarity datasources.SimilarBooksByVectorLister
	Fetcher    datasources.BookFetcher
}

type reviewSearchRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit"`
}

func (c ReviewSearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var req reviewSearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSearchTextBytes+1024)).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if len(req.Text) > maxSearchTextBytes {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	vector, err := c.Embedder.EmbedText(ctx, req.Text)
	if err != nil {
		logger.ErrorContext(ctx, "unable to embed text", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if vector == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	similarBooks, err := c.Similarity.ListSimilarBooksByVector(ctx, nil, vector, limit)
	if err != nil {
		logger.ErrorContext(ctx, "unable to find similar books", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ids := make([]string, 0, len(similarBooks))
	for _, similar := range similarBooks {
		ids = append(ids, similar.BookID)
	}

	books, err := c.Fetcher.FetchBooksByID(ctx, ids)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch books", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(BooksListResponse{
		Data:     books,
		Metadata: BooksListMetadata{},
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write books to response", "error", err)
	}
}
