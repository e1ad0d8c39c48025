package domain

import "context"

// ItemRepository is the abstraction for any kind of database intended to
// persist Items.
type ItemRepository interface {
	// AddItem persists a new item.
	AddItem(ctx context.Context, item Item) error
	// GetItem returns the item with the given id.
	GetItem(ctx context.Context, itemId string) (*Item, error)
	// GetItems returns the items matching the given ids.
	GetItems(ctx context.Context, itemIds []string) ([]Item, error)
	// GetItemsForSeller returns all the items owned by the given seller.
	GetItemsForSeller(ctx context.Context, sellerId string) ([]Item, error)
	// UpdateItem allows to commit multiple changes to the same item in a
	// transactional way.
	UpdateItem(
		ctx context.Context,
		itemId string,
		updateFn func(i *Item) (*Item, error),
	) error
}
