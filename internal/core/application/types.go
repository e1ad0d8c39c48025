package application

import (
	"github.com/shopspring/decimal"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

// Actions a target owner can take on a pending proposal.
const (
	TradeActionAccept = "accept"
	TradeActionReject = "reject"
)

// SubmitProposalRequest carries everything a proposer submits against a
// target item.
type SubmitProposalRequest struct {
	TargetItemId   string
	ProposerId     string
	OfferedItemIds []string
	CashAdjustment decimal.Decimal
	Message        string
}

// OfferPreview is the live feedback computed for an offer before it is
// submitted.
type OfferPreview struct {
	OfferValue  decimal.Decimal
	TargetValue decimal.Decimal
	Balance     domain.Balance
}

// SendMessageRequest carries one buyer turn of a negotiation conversation.
// ConversationId is empty on the first turn.
type SendMessageRequest struct {
	ItemId         string
	BuyerId        string
	ConversationId string
	Text           string
}

// SendMessageReply is the outcome of a buyer turn: the appended agent or
// confirmation message and the think-delay the UI should impose before
// displaying it. The delay is a pacing hint, not a protocol requirement.
type SendMessageReply struct {
	ConversationId string
	Message        domain.Message
	Round          int
	ThinkDelayMs   int
}
