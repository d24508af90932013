package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/averyhn/shelfrate/internal/command"
	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

type CriteriaOrderResponse struct {
	Order     domain.CriteriaOrder `json:"order"`
	IsDefault bool                 `json:"is_default"`
}

type CriteriaOrderGet struct {
	OrderGetter datasources.CriteriaOrderGetter
}

func (c CriteriaOrderGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	readerID := domain.ReaderIDFromContext(ctx)

	order, err := c.OrderGetter.GetCriteriaOrder(ctx, readerID)
	if err != nil {
		logger.ErrorContext(ctx, "unable to get criteria order", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := CriteriaOrderResponse{Order: order}
	if order == nil {
		response.Order = domain.DefaultCriteriaOrder()
		response.IsDefault = true
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "unable to write criteria order to response", "error", err)
	}
}

type CriteriaOrderSetRequest struct {
	Order domain.CriteriaOrder `json:"order"`
}

type CriteriaOrderSet struct {
	SetCmd command.Command[command.SetCriteriaOrderRequest, command.Empty]
}

func (c CriteriaOrderSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var reqBody CriteriaOrderSetRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to decode criteria order request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	readerID := domain.ReaderIDFromContext(ctx)
	_, err := c.SetCmd.Execute(ctx, command.SetCriteriaOrderRequest{
		ReaderID: readerID,
		Order:    reqBody.Order,
	})
	if err != nil {
		var validationErr domain.ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr)
			return
		}

		logger.ErrorContext(ctx, "failed to set criteria order", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
