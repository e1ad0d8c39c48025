package inmemory

import (
	"context"
	"sync"

	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

type itemRepositoryImpl struct {
	store *itemInmemoryStore
}

// NewItemRepositoryImpl returns a new inmemory ItemRepository implementation.
func NewItemRepositoryImpl() domain.ItemRepository {
	return &itemRepositoryImpl{
		store: &itemInmemoryStore{
			items:  map[string]domain.Item{},
			locker: &sync.Mutex{},
		},
	}
}

func (r itemRepositoryImpl) AddItem(_ context.Context, item domain.Item) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.items[item.Id]; ok {
		return ErrDuplicateKey
	}
	r.store.items[item.Id] = item
	return nil
}

func (r itemRepositoryImpl) GetItem(
	_ context.Context, itemId string,
) (*domain.Item, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getItem(itemId)
}

func (r itemRepositoryImpl) GetItems(
	_ context.Context, itemIds []string,
) ([]domain.Item, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	items := make([]domain.Item, 0, len(itemIds))
	for _, id := range itemIds {
		if item, ok := r.store.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r itemRepositoryImpl) GetItemsForSeller(
	_ context.Context, sellerId string,
) ([]domain.Item, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	items := make([]domain.Item, 0)
	for _, item := range r.store.items {
		if item.SellerId == sellerId {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r itemRepositoryImpl) UpdateItem(
	_ context.Context,
	itemId string,
	updateFn func(i *domain.Item) (*domain.Item, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentItem, err := r.getItem(itemId)
	if err != nil {
		return err
	}

	updatedItem, err := updateFn(currentItem)
	if err != nil {
		return err
	}

	r.store.items[itemId] = *updatedItem
	return nil
}

func (r itemRepositoryImpl) getItem(itemId string) (*domain.Item, error) {
	item, ok := r.store.items[itemId]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}
