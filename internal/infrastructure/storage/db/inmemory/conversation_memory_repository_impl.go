package inmemory

import (
	"context"
	"sync"

	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

type conversationRepositoryImpl struct {
	store *conversationInmemoryStore
}

// NewConversationRepositoryImpl returns a new inmemory
// ConversationRepository implementation.
func NewConversationRepositoryImpl() domain.ConversationRepository {
	return &conversationRepositoryImpl{
		store: &conversationInmemoryStore{
			conversations: map[string]domain.Conversation{},
			locker:        &sync.Mutex{},
		},
	}
}

func (r conversationRepositoryImpl) AddConversation(
	_ context.Context, conversation domain.Conversation,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.conversations[conversation.Id]; ok {
		return ErrDuplicateKey
	}
	r.store.conversations[conversation.Id] = conversation
	return nil
}

func (r conversationRepositoryImpl) GetConversation(
	_ context.Context, conversationId string,
) (*domain.Conversation, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getConversation(conversationId)
}

func (r conversationRepositoryImpl) GetConversationsForBuyer(
	_ context.Context, buyerId string,
) ([]domain.Conversation, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	conversations := make([]domain.Conversation, 0)
	for _, conversation := range r.store.conversations {
		if conversation.BuyerId == buyerId {
			conversations = append(conversations, conversation)
		}
	}
	return conversations, nil
}

func (r conversationRepositoryImpl) UpdateConversation(
	_ context.Context,
	conversationId string,
	updateFn func(c *domain.Conversation) (*domain.Conversation, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentConversation, err := r.getConversation(conversationId)
	if err != nil {
		return err
	}

	updatedConversation, err := updateFn(currentConversation)
	if err != nil {
		return err
	}

	r.store.conversations[conversationId] = *updatedConversation
	return nil
}

func (r conversationRepositoryImpl) getConversation(
	conversationId string,
) (*domain.Conversation, error) {
	conversation, ok := r.store.conversations[conversationId]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return &conversation, nil
}
