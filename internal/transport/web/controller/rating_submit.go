package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/averyhn/shelfrate/internal/command"
	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/mux"
)

// RatingSubmitRequest is the JSON request body for submitting a rating.
type RatingSubmitRequest struct {
	Scores map[domain.RatingCriterion]int `json:"scores"`
	Review string                         `json:"review,omitempty"`
}

type RatingSubmit struct {
	Fetcher   datasources.BookFetcher
	SubmitCmd command.Command[command.SubmitRatingRequest, command.Empty]
}

func (c RatingSubmit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookID := vars["book_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("book_id", bookID))

	books, err := c.Fetcher.FetchBooksByID(ctx, []string{bookID})
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch book", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(books) == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var reqBody RatingSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to parse request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	readerID := domain.ReaderIDFromContext(r.Context())
	_, err = c.SubmitCmd.Execute(ctx, command.SubmitRatingRequest{
		RaterID: readerID,
		BookID:  bookID,
		Scores:  reqBody.Scores,
		Review:  reqBody.Review,
	})
	if err != nil {
		var validationErr domain.ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr)
			return
		}

		logger.ErrorContext(ctx, "failed to submit rating", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
