package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

type itemRepositoryImpl struct {
	db *DbManager
}

// NewItemRepositoryImpl returns a badger-backed ItemRepository
// implementation.
func NewItemRepositoryImpl(db *DbManager) domain.ItemRepository {
	return itemRepositoryImpl{db: db}
}

func (i itemRepositoryImpl) AddItem(_ context.Context, item domain.Item) error {
	return i.db.Store.Insert(item.Id, item)
}

func (i itemRepositoryImpl) GetItem(
	_ context.Context, itemId string,
) (*domain.Item, error) {
	var item domain.Item
	if err := i.db.Store.Get(itemId, &item); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (i itemRepositoryImpl) GetItems(
	ctx context.Context, itemIds []string,
) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(itemIds))
	for _, id := range itemIds {
		item, err := i.GetItem(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (i itemRepositoryImpl) GetItemsForSeller(
	_ context.Context, sellerId string,
) ([]domain.Item, error) {
	var items []domain.Item
	query := badgerhold.Where("SellerId").Eq(sellerId)
	if err := i.db.Store.Find(&items, query); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]domain.Item, 0)
	}
	return items, nil
}

func (i itemRepositoryImpl) UpdateItem(
	_ context.Context,
	itemId string,
	updateFn func(i *domain.Item) (*domain.Item, error),
) error {
	return i.db.Store.Badger().Update(func(tx *badger.Txn) error {
		var item domain.Item
		if err := i.db.Store.TxGet(tx, itemId, &item); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrItemNotFound
			}
			return err
		}

		updatedItem, err := updateFn(&item)
		if err != nil {
			return err
		}

		return i.db.Store.TxUpdate(tx, itemId, *updatedItem)
	})
}
