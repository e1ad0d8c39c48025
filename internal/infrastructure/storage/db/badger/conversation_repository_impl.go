package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

type conversationRepositoryImpl struct {
	db *DbManager
}

// NewConversationRepositoryImpl returns a badger-backed
// ConversationRepository implementation.
func NewConversationRepositoryImpl(db *DbManager) domain.ConversationRepository {
	return conversationRepositoryImpl{db: db}
}

func (c conversationRepositoryImpl) AddConversation(
	_ context.Context, conversation domain.Conversation,
) error {
	return c.db.Store.Insert(conversation.Id, conversation)
}

func (c conversationRepositoryImpl) GetConversation(
	_ context.Context, conversationId string,
) (*domain.Conversation, error) {
	var conversation domain.Conversation
	if err := c.db.Store.Get(conversationId, &conversation); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (c conversationRepositoryImpl) GetConversationsForBuyer(
	_ context.Context, buyerId string,
) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	query := badgerhold.Where("BuyerId").Eq(buyerId)
	if err := c.db.Store.Find(&conversations, query); err != nil {
		return nil, err
	}
	if conversations == nil {
		conversations = make([]domain.Conversation, 0)
	}
	return conversations, nil
}

func (c conversationRepositoryImpl) UpdateConversation(
	_ context.Context,
	conversationId string,
	updateFn func(c *domain.Conversation) (*domain.Conversation, error),
) error {
	return c.db.Store.Badger().Update(func(tx *badger.Txn) error {
		var conversation domain.Conversation
		if err := c.db.Store.TxGet(tx, conversationId, &conversation); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrConversationNotFound
			}
			return err
		}

		updatedConversation, err := updateFn(&conversation)
		if err != nil {
			return err
		}

		return c.db.Store.TxUpdate(tx, conversationId, *updatedConversation)
	})
}
