package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item lifecycle statuses.
const (
	ItemStatusActive = "active"
	ItemStatusSold   = "sold"
	ItemStatusTraded = "traded"
)

// Item is the data structure representing a unit of marketplace inventory.
// An item is owned by exactly one seller at a time, ownership changes only
// when a trade proposal targeting it is completed.
type Item struct {
	Id        string
	Title     string
	Price     decimal.Decimal
	SellerId  string
	Status    string
	CreatedAt int64
}

// NewItem returns an active item with a new id owned by the given seller.
func NewItem(title string, price decimal.Decimal, sellerId string) *Item {
	return &Item{
		Id:        uuid.New().String(),
		Title:     title,
		Price:     price,
		SellerId:  sellerId,
		Status:    ItemStatusActive,
		CreatedAt: time.Now().Unix(),
	}
}

// IsActive returns whether the item can be offered or targeted in a trade.
func (i *Item) IsActive() bool {
	return i.Status == ItemStatusActive
}

// TransferTo hands the item over to a new owner, marking it as traded.
func (i *Item) TransferTo(ownerId string) error {
	if !i.IsActive() {
		return ErrItemNotActive
	}
	i.SellerId = ownerId
	i.Status = ItemStatusTraded
	return nil
}
