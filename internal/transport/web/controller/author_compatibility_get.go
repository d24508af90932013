package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/averyhn/shelfrate/internal/command"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/mux"
)

// CompatibilityCriterionResponse is one criterion's gap as rendered at the
// API boundary.
type CompatibilityCriterionResponse struct {
	Difference float64 `json:"difference"`
	Normalized float64 `json:"normalized"`
}

type CompatibilityResponse struct {
	TotalRatings     int  `json:"total_ratings"`
	HasEnoughRatings bool `json:"has_enough_ratings"`
	RatingsNeeded    int  `json:"ratings_needed,omitempty"`

	Score *float64 `json:"score,omitempty"`
	// Label carries the qualitative band for Score. It is serialized as
	// "label" rather than "overall", which this API reserves for numeric
	// profile means.
	Label    domain.CompatibilityLabel                                 `json:"label,omitempty"`
	Criteria map[domain.RatingCriterion]CompatibilityCriterionResponse `json:"criteria,omitempty"`
}

func compatibilityResponse(result domain.CompatibilityResult) CompatibilityResponse {
	response := CompatibilityResponse{
		TotalRatings:     result.TotalRatings,
		HasEnoughRatings: result.HasEnoughRatings,
		RatingsNeeded:    result.RatingsNeeded,
	}
	if !result.HasEnoughRatings {
		return response
	}

	score := result.Score
	response.Score = &score
	response.Label = result.Label
	response.Criteria = make(map[domain.RatingCriterion]CompatibilityCriterionResponse, len(result.Criteria))
	for criterion, delta := range result.Criteria {
		response.Criteria[criterion] = CompatibilityCriterionResponse{
			Difference: delta.Difference,
			Normalized: delta.Normalized,
		}
	}
	return response
}

type AuthorCompatibilityGet struct {
	Command command.Command[command.ComputeCompatibilityRequest, domain.CompatibilityResult]
}

func (c AuthorCompatibilityGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	vars := mux.Vars(r)
	authorID := vars["author_id"]
	readerID := domain.ReaderIDFromContext(ctx)

	result, err := c.Command.Execute(ctx, command.ComputeCompatibilityRequest{
		ReaderID: readerID,
		AuthorID: authorID,
	})
	if err != nil {
		var validationErr domain.ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr)
			return
		}
		logger.ErrorContext(ctx, "unable to compute compatibility", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(compatibilityResponse(result)); err != nil {
		logger.ErrorContext(ctx, "unable to write compatibility to response", "error", err)
	}
}
