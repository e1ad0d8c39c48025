package inmemory

import (
	"sync"

	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	"github.com/tradepost/tradepost-daemon/internal/core/ports"
)

// RepoManager holds the in-memory implementations of the domain
// repositories, used for tests and ephemeral runs.
type RepoManager struct {
	itemRepository         domain.ItemRepository
	tradeRepository        domain.TradeProposalRepository
	conversationRepository domain.ConversationRepository
}

// NewRepoManager returns a RepoManager with empty stores.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		itemRepository:         NewItemRepositoryImpl(),
		tradeRepository:        NewTradeProposalRepositoryImpl(),
		conversationRepository: NewConversationRepositoryImpl(),
	}
}

func (d *RepoManager) ItemRepository() domain.ItemRepository {
	return d.itemRepository
}

func (d *RepoManager) TradeProposalRepository() domain.TradeProposalRepository {
	return d.tradeRepository
}

func (d *RepoManager) ConversationRepository() domain.ConversationRepository {
	return d.conversationRepository
}

func (d *RepoManager) Close() {}

type itemInmemoryStore struct {
	items  map[string]domain.Item
	locker *sync.Mutex
}

type tradeInmemoryStore struct {
	proposals map[string]domain.TradeProposal
	locker    *sync.Mutex
}

type conversationInmemoryStore struct {
	conversations map[string]domain.Conversation
	locker        *sync.Mutex
}
