package application

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	"github.com/tradepost/tradepost-daemon/internal/core/ports"
)

// OperatorService exposes the inventory and subscription management surface
// of the daemon.
type OperatorService interface {
	AddItem(
		ctx context.Context, title string, price decimal.Decimal, sellerId string,
	) (*domain.Item, error)
	GetItem(ctx context.Context, itemId string) (*domain.Item, error)
	ListItemsForSeller(ctx context.Context, sellerId string) ([]domain.Item, error)
	AddWebhook(topic, endpoint, secret string) (string, error)
	RemoveWebhook(topic, id string) error
	ListWebhooks(topic string) []ports.Subscription
}

type operatorService struct {
	repoManager ports.RepoManager
	pubsub      ports.PubSub
}

// NewOperatorService returns an OperatorService backed by the given repo
// manager and pubsub service.
func NewOperatorService(
	repoManager ports.RepoManager, pubsub ports.PubSub,
) OperatorService {
	return &operatorService{
		repoManager: repoManager,
		pubsub:      pubsub,
	}
}

func (o *operatorService) AddItem(
	ctx context.Context, title string, price decimal.Decimal, sellerId string,
) (*domain.Item, error) {
	item := domain.NewItem(title, price, sellerId)
	if err := o.repoManager.ItemRepository().AddItem(ctx, *item); err != nil {
		return nil, err
	}
	log.Debugf("seller %s listed item %s at %s", sellerId, item.Id, price)
	return item, nil
}

func (o *operatorService) GetItem(
	ctx context.Context, itemId string,
) (*domain.Item, error) {
	item, err := o.repoManager.ItemRepository().GetItem(ctx, itemId)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (o *operatorService) ListItemsForSeller(
	ctx context.Context, sellerId string,
) ([]domain.Item, error) {
	return o.repoManager.ItemRepository().GetItemsForSeller(ctx, sellerId)
}

func (o *operatorService) AddWebhook(topic, endpoint, secret string) (string, error) {
	return o.pubsub.Subscribe(topic, endpoint, secret)
}

func (o *operatorService) RemoveWebhook(topic, id string) error {
	return o.pubsub.Unsubscribe(topic, id)
}

func (o *operatorService) ListWebhooks(topic string) []ports.Subscription {
	return o.pubsub.ListSubscriptionsForTopic(topic)
}
