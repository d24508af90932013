package controller

import (
	"encoding/json"
	"net/http"

	"github.com/averyhn/shelfrate/internal/command"
	"github.com/averyhn/shelfrate/internal/domain"
)

// defaultRecommendedLimit is how many recommendations a single request
// serves. Limit is not caller-tunable; the pipeline already trims.
const defaultRecommendedLimit = 10

type RecommendedBooksList struct {
	Command command.Command[command.RecommendBooksRequest, []domain.Book]
}

func (c RecommendedBooksList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	readerID := domain.ReaderIDFromContext(ctx)

	books, err := c.Command.Execute(ctx, command.RecommendBooksRequest{
		ReaderID: readerID,
		Limit:    defaultRecommendedLimit,
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to recommend books", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if books == nil {
		books = []domain.Book{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(BooksListResponse{Data: books}); err != nil {
		logger.ErrorContext(ctx, "unable to write recommended books to response", "error", err)
	}
}
