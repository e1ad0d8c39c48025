package domain

import "context"

// ConversationRepository is the abstraction for any kind of database
// intended to persist negotiation Conversations.
type ConversationRepository interface {
	// AddConversation persists a new conversation.
	AddConversation(ctx context.Context, conversation Conversation) error
	// GetConversation returns the conversation with the given id.
	GetConversation(ctx context.Context, conversationId string) (*Conversation, error)
	// GetConversationsForBuyer returns all the conversations started by a
	// buyer.
	GetConversationsForBuyer(ctx context.Context, buyerId string) ([]Conversation, error)
	// UpdateConversation commits the changes applied by updateFn to the
	// stored conversation within a single store transaction.
	UpdateConversation(
		ctx context.Context,
		conversationId string,
		updateFn func(c *Conversation) (*Conversation, error),
	) error
}
