package domain

import "github.com/shopspring/decimal"

// Categorical labels for the offer/target value balance.
const (
	BalanceEven               = "even"
	BalanceProposerOffersMore = "proposerOffersMore"
	BalanceTargetOffersMore   = "targetOffersMore"
)

// Offer and target values within this band are considered even. The band
// absorbs floating rounding on item prices, it is not an exact equality.
var balanceTolerance = decimal.NewFromInt(1)

// Balance holds the signed difference between the total offered value and
// the target item value, along with a tie-break-free categorical label.
type Balance struct {
	Difference decimal.Decimal
	Direction  string
}

// ComputeOfferValue returns the sum of the offered item prices plus the cash
// adjustment. Pure function, used both for live feedback and for validation
// at submission time.
func ComputeOfferValue(offeredItems []Item, cashAdjustment decimal.Decimal) decimal.Decimal {
	total := cashAdjustment
	for _, item := range offeredItems {
		total = total.Add(item.Price)
	}
	return total
}

// ComputeBalance returns the balance between an offer value and a target
// value. The direction is "even" when the absolute difference is below the
// tolerance band, otherwise it tells which side offers more.
func ComputeBalance(offerValue, targetValue decimal.Decimal) Balance {
	diff := offerValue.Sub(targetValue)
	direction := BalanceEven
	if diff.Abs().GreaterThanOrEqual(balanceTolerance) {
		if diff.IsPositive() {
			direction = BalanceProposerOffersMore
		} else {
			direction = BalanceTargetOffersMore
		}
	}
	return Balance{Difference: diff, Direction: direction}
}
