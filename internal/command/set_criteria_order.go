package command

import (
	"context"
	"fmt"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

// SetCriteriaOrderRequest is the request for the SetCriteriaOrder command.
type SetCriteriaOrderRequest struct {
	ReaderID string
	Order    domain.CriteriaOrder
}

// SetCriteriaOrder replaces a reader's criteria order wholesale. An invalid
// permutation is rejected with the domain's ValidationError; it is never
// replaced with a default.
type SetCriteriaOrder struct {
	OrderSetter datasources.CriteriaOrderSetter
}

// NewSetCriteriaOrder creates a properly initialized SetCriteriaOrder command.
func NewSetCriteriaOrder(orderSetter datasources.CriteriaOrderSetter) *SetCriteriaOrder {
	return &SetCriteriaOrder{OrderSetter: orderSetter}
}

// Execute validates and stores the order.
func (c *SetCriteriaOrder) Execute(ctx context.Context, req SetCriteriaOrderRequest) (Empty, error) {
	if err := req.Order.Validate(); err != nil {
		return Empty{}, err
	}

	if err := c.OrderSetter.SetCriteriaOrder(ctx, req.ReaderID, req.Order); err != nil {
		return Empty{}, fmt.Errorf("storing criteria order: %w", err)
	}

	logger := domain.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "stored criteria order", "readerID", req.ReaderID)

	return Empty{}, nil
}
