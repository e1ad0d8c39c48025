package webhookpubsub

// webhook action types
const (
	TradeProposalCreated WebhookAction = iota
	TradeProposalAccepted
	TradeProposalRejected
	TradeProposalExpired
	TradeProposalCompleted
	NegotiationOfferAccepted
	AllActions
)

var (
	actionToString = map[WebhookAction]string{
		TradeProposalCreated:     "TRADE_PROPOSAL_CREATED",
		TradeProposalAccepted:    "TRADE_PROPOSAL_ACCEPTED",
		TradeProposalRejected:    "TRADE_PROPOSAL_REJECTED",
		TradeProposalExpired:     "TRADE_PROPOSAL_EXPIRED",
		TradeProposalCompleted:   "TRADE_PROPOSAL_COMPLETED",
		NegotiationOfferAccepted: "NEGOTIATION_OFFER_ACCEPTED",
		AllActions:               "*",
	}
	stringToAction = map[string]WebhookAction{
		"TRADE_PROPOSAL_CREATED":     TradeProposalCreated,
		"TRADE_PROPOSAL_ACCEPTED":    TradeProposalAccepted,
		"TRADE_PROPOSAL_REJECTED":    TradeProposalRejected,
		"TRADE_PROPOSAL_EXPIRED":     TradeProposalExpired,
		"TRADE_PROPOSAL_COMPLETED":   TradeProposalCompleted,
		"NEGOTIATION_OFFER_ACCEPTED": NegotiationOfferAccepted,
		"*":                          AllActions,
	}
)

type WebhookAction int

func WebhookActionFromString(actionStr string) (WebhookAction, bool) {
	action, ok := stringToAction[actionStr]
	return action, ok
}

func (wa WebhookAction) String() string {
	actionStr, ok := actionToString[wa]
	if !ok {
		actionStr = "UNKNOWN"
	}
	return actionStr
}
