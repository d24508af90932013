package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/mux"
)

// ProfileResponse is an aggregate rating profile as rendered at the API
// boundary. Count of zero with null means signals "no ratings yet".
type ProfileResponse struct {
	Means   map[domain.RatingCriterion]float64 `json:"means"`
	Overall *float64                           `json:"overall"`
	Count   int                                `json:"count"`
	Mode    domain.OverallMode                 `json:"mode"`
}

func profileResponse(profile *domain.AggregateProfile, mode domain.OverallMode) ProfileResponse {
	if profile == nil {
		return ProfileResponse{Mode: mode}
	}
	overall := profile.Overall
	return ProfileResponse{
		Means:   profile.Means,
		Overall: &overall,
		Count:   profile.Count,
		Mode:    mode,
	}
}

func overallModeFromQuery(q url.Values) (domain.OverallMode, error) {
	if !q.Has("mode") {
		return domain.OverallModeStraight, nil
	}
	return domain.ParseOverallMode(q.Get("mode"))
}

// orderForRequest resolves the criteria order a weighted profile should use:
// the authenticated reader's stored order when there is one, the onboarding
// default otherwise. Straight mode needs no order.
func orderForRequest(
	ctx context.Context, mode domain.OverallMode, orderGetter datasources.CriteriaOrderGetter,
) (domain.CriteriaOrder, error) {
	if mode != domain.OverallModeWeighted {
		return nil, nil
	}

	if readerID := domain.ReaderIDFromContext(ctx); readerID != "" {
		order, err := orderGetter.GetCriteriaOrder(ctx, readerID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}

	return domain.DefaultCriteriaOrder(), nil
}

type BookProfileGet struct {
	RatingsLister datasources.BookRatingsAllLister
	OrderGetter   datasources.CriteriaOrderGetter
}

func (c BookProfileGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	vars := mux.Vars(r)
	bookID := vars["book_id"]

	mode, err := overallModeFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "invalid profile mode in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := orderForRequest(ctx, mode, c.OrderGetter)
	if err != nil {
		logger.ErrorContext(ctx, "unable to resolve criteria order", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	records, err := c.RatingsLister.ListAllRatingsByBook(ctx, bookID)
	if err != nil {
		logger.ErrorContext(ctx, "unable to list book ratings", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	profile, err := domain.Aggregate(records, mode, order)
	if err != nil {
		logger.ErrorContext(ctx, "unable to aggregate book ratings", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(profileResponse(profile, mode)); err != nil {
		logger.ErrorContext(ctx, "unable to write profile to response", "error", err)
	}
}

type AuthorProfileGet struct {
	RatingsLister datasources.AuthorRatingsLister
	OrderGetter   datasources.CriteriaOrderGetter
}

func (c AuthorProfileGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	vars := mux.Vars(r)
	authorID := vars["author_id"]

	mode, err := overallModeFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "invalid profile mode in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := orderForRequest(ctx, mode, c.OrderGetter)
	if err != nil {
		logger.ErrorContext(ctx, "unable to resolve criteria order", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	records, err := c.RatingsLister.ListRatingsByAuthor(ctx, authorID)
	if err != nil {
		logger.ErrorContext(ctx, "unable to list author ratings", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	profile, err := domain.Aggregate(records, mode, order)
	if err != nil {
		logger.ErrorContext(ctx, "unable to aggregate author ratings", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(profileResponse(profile, mode)); err != nil {
		logger.ErrorContext(ctx, "unable to write profile to response", "error", err)
	}
}
