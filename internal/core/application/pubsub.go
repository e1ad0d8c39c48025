package application

import "encoding/json"

// Topics published by the core services. Webhook subscribers and the live
// updates feed receive the JSON payloads below.
const (
	TopicTradeProposalCreated   = "TRADE_PROPOSAL_CREATED"
	TopicTradeProposalAccepted  = "TRADE_PROPOSAL_ACCEPTED"
	TopicTradeProposalRejected  = "TRADE_PROPOSAL_REJECTED"
	TopicTradeProposalExpired   = "TRADE_PROPOSAL_EXPIRED"
	TopicTradeProposalCompleted = "TRADE_PROPOSAL_COMPLETED"
	TopicNegotiationAccepted    = "NEGOTIATION_OFFER_ACCEPTED"
)

// TradeProposalPayload is the notification payload for proposal lifecycle
// events.
type TradeProposalPayload struct {
	ProposalId        string `json:"proposal_id"`
	TargetItemId      string `json:"target_item_id"`
	TargetOwnerId     string `json:"target_owner_id"`
	ProposerId        string `json:"proposer_id"`
	TotalOfferedValue string `json:"total_offered_value"`
	Status            string `json:"status"`
	ExpiryTime        int64  `json:"expires_at"`
}

// NegotiationPayload is the notification payload for accepted negotiation
// offers.
type NegotiationPayload struct {
	ConversationId string `json:"conversation_id"`
	ItemId         string `json:"item_id"`
	BuyerId        string `json:"buyer_id"`
	AcceptedOffer  string `json:"accepted_offer"`
}

func serializePayload(payload interface{}) string {
	buf, _ := json.Marshal(payload)
	return string(buf)
}
