package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

func TestComputeOfferValue(t *testing.T) {
	items := []domain.Item{
		*domain.NewItem("Bike", decimal.NewFromInt(300), "seller-1"),
		*domain.NewItem("Helmet", decimal.NewFromFloat(49.99), "seller-1"),
	}

	value := domain.ComputeOfferValue(items, decimal.NewFromInt(100))
	require.True(t, value.Equal(decimal.NewFromFloat(449.99)))

	t.Run("cash_only", func(t *testing.T) {
		value := domain.ComputeOfferValue(nil, decimal.NewFromInt(75))
		require.True(t, value.Equal(decimal.NewFromInt(75)))
	})
}

func TestComputeBalance(t *testing.T) {
	tests := []struct {
		name        string
		offerValue  decimal.Decimal
		targetValue decimal.Decimal
		direction   string
	}{
		{
			name:        "exactly_even",
			offerValue:  decimal.NewFromInt(100),
			targetValue: decimal.NewFromInt(100),
			direction:   domain.BalanceEven,
		},
		{
			name:        "even_within_tolerance_above",
			offerValue:  decimal.NewFromFloat(100.99),
			targetValue: decimal.NewFromInt(100),
			direction:   domain.BalanceEven,
		},
		{
			name:        "even_within_tolerance_below",
			offerValue:  decimal.NewFromFloat(99.01),
			targetValue: decimal.NewFromInt(100),
			direction:   domain.BalanceEven,
		},
		{
			name:        "proposer_offers_more",
			offerValue:  decimal.NewFromInt(101),
			targetValue: decimal.NewFromInt(100),
			direction:   domain.BalanceProposerOffersMore,
		},
		{
			name:        "target_offers_more",
			offerValue:  decimal.NewFromInt(99),
			targetValue: decimal.NewFromInt(100),
			direction:   domain.BalanceTargetOffersMore,
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			balance := domain.ComputeBalance(tt.offerValue, tt.targetValue)
			require.Equal(t, tt.direction, balance.Direction)
			require.True(
				t, balance.Difference.Equal(tt.offerValue.Sub(tt.targetValue)),
			)
		})
	}
}
