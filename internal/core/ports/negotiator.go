package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// AgentRequest is the payload sent to the remote negotiation function for
// every buyer turn that is not short-circuited locally.
type AgentRequest struct {
	ItemId         string
	UserMessage    string
	ConversationId string
	BuyerId        string
}

// AgentReply is the structured reply of the negotiation function: the
// natural-language response plus the optional counter-offer metadata.
type AgentReply struct {
	Success            bool
	Response           string
	ConversationId     string
	CounterOfferAmount *decimal.Decimal
	OfferAccepted      bool
	ExpiryTime         int64
	Error              string
}

// NegotiationAgent defines the methods of the remote negotiation function
// consumed by the chat protocol.
type NegotiationAgent interface {
	// Negotiate forwards a buyer message and returns the agent reply.
	// Implementations must bound the call with a timeout so a stalled
	// remote surfaces as a transport failure.
	Negotiate(ctx context.Context, request AgentRequest) (*AgentReply, error)
}
