package application

import "github.com/shopspring/decimal"

// validateProposal enforces the submission invariants of a trade proposal:
// a non-empty offer and a cash adjustment within [0, ceiling]. It must pass
// before anything is persisted or sent over the wire.
func validateProposal(
	offeredItemIds []string, cashAdjustment, ceiling decimal.Decimal,
) error {
	if cashAdjustment.IsNegative() {
		return ErrNegativeCashAdjustment
	}
	if len(offeredItemIds) == 0 && !cashAdjustment.IsPositive() {
		return ErrEmptyOffer
	}
	if cashAdjustment.GreaterThan(ceiling) {
		return ErrCashCeilingExceeded
	}
	return nil
}
