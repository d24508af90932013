package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/mux"
)

// RatingItem is one rating record as rendered at the API boundary. Criteria
// the rater skipped are absent from the scores map, never zeroed.
type RatingItem struct {
	RaterID   string                         `json:"rater_id"`
	Scores    map[domain.RatingCriterion]int `json:"scores"`
	Review    string                         `json:"review,omitempty"`
	Overall   float64                        `json:"overall"`
	CreatedAt time.Time                      `json:"created_at"`
}

type BookRatingsListResponse struct {
	Data []RatingItem `json:"data"`
}

type BookRatingsList struct {
	RatingsLister datasources.BookRatingsLister
}

func (c BookRatingsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	vars := mux.Vars(r)
	bookID := vars["book_id"]

	page, pageSize, err := parsePagination(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse pagination", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	records, err := c.RatingsLister.ListRatingsByBook(ctx, bookID, page, pageSize)
	if err != nil {
		logger.ErrorContext(ctx, "unable to list book ratings", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	items := make([]RatingItem, 0, len(records))
	for _, record := range records {
		// Stored records always have at least one subscore, so the straight
		// overall cannot fail here.
		overall, err := domain.OverallOf(record, domain.OverallModeStraight, nil)
		if err != nil {
			logger.ErrorContext(ctx, "stored rating failed overall computation",
				"error", err, "book_id", record.BookID, "rater_id", record.RaterID)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		items = append(items, RatingItem{
			RaterID:   record.RaterID,
			Scores:    record.Scores,
			Review:    record.Review,
			Overall:   overall,
			CreatedAt: record.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(BookRatingsListResponse{Data: items}); err != nil {
		logger.ErrorContext(ctx, "unable to write ratings to response", "error", err)
	}
}
