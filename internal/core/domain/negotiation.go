package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Message sender roles.
const (
	MessageRoleUser   = "user"
	MessageRoleAi     = "ai"
	MessageRoleSystem = "system"
)

// Message is a single entry of a negotiation conversation. Messages are
// immutable once appended, the sequence is append-only and ordered by
// insertion.
type Message struct {
	Role            string
	Text            string
	Timestamp       int64
	OfferAccepted   bool
	CounterOffer    *decimal.Decimal
	AcceptedOffer   *decimal.Decimal
	ExpiryTime      int64
	IsSecondCounter bool
	IsFinalCounter  bool
}

// Conversation is a single buyer-agent dialogue about one item. It is
// created implicitly on the first turn with the id assigned by the
// negotiation agent, and remains open until the buyer accepts or abandons.
type Conversation struct {
	Id        string
	ItemId    string
	BuyerId   string
	Messages  []Message
	Round     int
	CreatedAt int64
}

// NewConversation returns a conversation for the given item and buyer.
func NewConversation(id, itemId, buyerId string) *Conversation {
	return &Conversation{
		Id:        id,
		ItemId:    itemId,
		BuyerId:   buyerId,
		Messages:  make([]Message, 0),
		CreatedAt: time.Now().Unix(),
	}
}

// AddUserMessage appends a buyer message to the conversation.
func (c *Conversation) AddUserMessage(text string) Message {
	msg := Message{
		Role:      MessageRoleUser,
		Text:      text,
		Timestamp: time.Now().Unix(),
	}
	c.Messages = append(c.Messages, msg)
	return msg
}

// AddAgentMessage appends an agent reply. The round counter increments only
// when the reply carries a counter offer. A counter issued when one round
// has already elapsed is flagged as the second counter, from two rounds on
// as the final one.
func (c *Conversation) AddAgentMessage(
	text string, counterOffer *decimal.Decimal, offerAccepted bool, expiryTime int64,
) Message {
	msg := Message{
		Role:          MessageRoleAi,
		Text:          text,
		Timestamp:     time.Now().Unix(),
		OfferAccepted: offerAccepted,
		CounterOffer:  counterOffer,
		ExpiryTime:    expiryTime,
	}
	if counterOffer != nil {
		msg.IsSecondCounter = c.Round == 1
		msg.IsFinalCounter = c.Round >= 2
		c.Round++
	}
	c.Messages = append(c.Messages, msg)
	return msg
}

// AddAcceptanceMessage appends the canned confirmation produced by the local
// acceptance fast-path, carrying the amount extracted from the buyer text.
func (c *Conversation) AddAcceptanceMessage(text string, acceptedOffer decimal.Decimal) Message {
	msg := Message{
		Role:          MessageRoleAi,
		Text:          text,
		Timestamp:     time.Now().Unix(),
		OfferAccepted: true,
		AcceptedOffer: &acceptedOffer,
	}
	c.Messages = append(c.Messages, msg)
	return msg
}

// AddSystemMessage appends an inline error entry. The conversation remains
// usable for the next turn.
func (c *Conversation) AddSystemMessage(text string) Message {
	msg := Message{
		Role:      MessageRoleSystem,
		Text:      text,
		Timestamp: time.Now().Unix(),
	}
	c.Messages = append(c.Messages, msg)
	return msg
}
