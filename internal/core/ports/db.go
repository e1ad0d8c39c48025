package ports

import (
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

// RepoManager holds all the domain repositories implemented by a store and
// exposes them in a single data structure.
type RepoManager interface {
	// ItemRepository returns the repository of the Item entity.
	ItemRepository() domain.ItemRepository
	// TradeProposalRepository returns the repository of the TradeProposal
	// entity.
	TradeProposalRepository() domain.TradeProposalRepository
	// ConversationRepository returns the repository of the Conversation
	// entity.
	ConversationRepository() domain.ConversationRepository
	// Close should be used to gracefully close the connection with the store.
	Close()
}
