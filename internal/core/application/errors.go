package application

import "errors"

var (
	// ErrEmptyOffer is thrown when a proposal carries neither offered items
	// nor a positive cash adjustment.
	ErrEmptyOffer = errors.New("offer at least one item or a positive cash adjustment")
	// ErrCashCeilingExceeded ...
	ErrCashCeilingExceeded = errors.New("cash adjustment exceeds the allowed ceiling")
	// ErrNegativeCashAdjustment ...
	ErrNegativeCashAdjustment = errors.New("cash adjustment must not be negative")
	// ErrItemNotAvailable is thrown when the target of a proposal or a
	// negotiation is not in active status.
	ErrItemNotAvailable = errors.New("item is not available for trading")
	// ErrOfferedItemNotOwned ...
	ErrOfferedItemNotOwned = errors.New("all offered items must be owned by the proposer")
	// ErrOfferedItemNotAvailable ...
	ErrOfferedItemNotAvailable = errors.New("all offered items must be in active status")
	// ErrSelfTrade is thrown when a user submits a proposal against an item
	// they already own.
	ErrSelfTrade = errors.New("cannot trade against an owned item")
	// ErrNotAuthorized is thrown when the responder of a proposal is not the
	// owner of the target item.
	ErrNotAuthorized = errors.New("only the target item owner can respond to the proposal")
	// ErrInvalidAction ...
	ErrInvalidAction = errors.New("action must be either accept or reject")
	// ErrConversationNotOwned ...
	ErrConversationNotOwned = errors.New("conversation belongs to another buyer")
	// ErrAgentUnreachable is returned when the call to the negotiation
	// function fails or times out. The operation is retryable by re-sending
	// the same message.
	ErrAgentUnreachable = errors.New("negotiation service is unreachable, try again later")
	// ErrMalformedAgentReply is returned when the negotiation function
	// replies with success false or without a response text.
	ErrMalformedAgentReply = errors.New("negotiation service returned an invalid reply")
)
