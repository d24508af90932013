package command

import (
	"context"
	"errors"
	"testing"

	"github.com/averyhn/shelfrate/internal/datasources/mocks"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetCriteriaOrder_Execute(t *testing.T) {
	order := domain.CriteriaOrder{
		domain.CriterionThemes,
		domain.CriterionEnjoyment,
		domain.CriterionCharacters,
		domain.CriterionWriting,
		domain.CriterionWorldbuilding,
	}

	setter := mocks.NewMockCriteriaOrderSetter(t)
	setter.On("SetCriteriaOrder", mock.Anything, "reader1", order).Return(nil)

	cmd := NewSetCriteriaOrder(setter)

	ctx := domain.ContextWithLogger(context.Background(), testLogger())
	_, err := cmd.Execute(ctx, SetCriteriaOrderRequest{ReaderID: "reader1", Order: order})
	require.NoError(t, err)
}

func TestSetCriteriaOrder_Execute_InvalidOrder(t *testing.T) {
	cases := []struct {
		name  string
		order domain.CriteriaOrder
	}{
		{name: "empty", order: nil},
		{
			name:  "too_short",
			order: domain.CriteriaOrder{domain.CriterionEnjoyment, domain.CriterionWriting},
		},
		{
			name: "duplicate",
			order: domain.CriteriaOrder{
				domain.CriterionEnjoyment,
				domain.CriterionEnjoyment,
				domain.CriterionThemes,
				domain.CriterionCharacters,
				domain.CriterionWorldbuilding,
			},
		},
		{
			name: "unknown_criterion",
			order: domain.CriteriaOrder{
				domain.CriterionEnjoyment,
				domain.CriterionWriting,
				domain.CriterionThemes,
				domain.CriterionCharacters,
				"pacing",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setter := mocks.NewMockCriteriaOrderSetter(t)

			cmd := NewSetCriteriaOrder(setter)

			ctx := domain.ContextWithLogger(context.Background(), testLogger())
			_, err := cmd.Execute(ctx, SetCriteriaOrderRequest{ReaderID: "reader1", Order: tc.order})

			var validationErr domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			setter.AssertNotCalled(t, "SetCriteriaOrder")
		})
	}
}

func TestSetCriteriaOrder_Execute_StoreError(t *testing.T) {
	setter := mocks.NewMockCriteriaOrderSetter(t)
	setter.On("SetCriteriaOrder", mock.Anything, "reader1", domain.DefaultCriteriaOrder()).
		Return(errors.New("db error"))

	cmd := NewSetCriteriaOrder(setter)

	ctx := domain.ContextWithLogger(context.Background(), testLogger())
	_, err := cmd.Execute(ctx, SetCriteriaOrderRequest{
		ReaderID: "reader1",
		Order:    domain.DefaultCriteriaOrder(),
	})

	require.Error(t, err)
	require.Contains(t, err.Error(), "storing criteria order")
}
