package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	"github.com/tradepost/tradepost-daemon/internal/core/ports"
	"github.com/tradepost/tradepost-daemon/internal/metrics"
)

// TradeService exposes the trade proposal engine: value-balance preview,
// proposal submission and the target owner's accept/reject decision.
type TradeService interface {
	PreviewOffer(
		ctx context.Context,
		targetItemId string, offeredItemIds []string,
		cashAdjustment decimal.Decimal,
	) (*OfferPreview, error)
	SubmitProposal(
		ctx context.Context, req SubmitProposalRequest,
	) (*domain.TradeProposal, error)
	RespondToProposal(
		ctx context.Context, proposalId, responderId, action string,
	) (*domain.TradeProposal, error)
	CompleteProposal(
		ctx context.Context, proposalId string,
	) (*domain.TradeProposal, error)
	GetProposal(ctx context.Context, proposalId string) (*domain.TradeProposal, error)
	ListProposalsForProposer(ctx context.Context, proposerId string) ([]domain.TradeProposal, error)
	ListProposalsForTargetOwner(ctx context.Context, ownerId string) ([]domain.TradeProposal, error)
	ListProposalsForItem(ctx context.Context, itemId string) ([]domain.TradeProposal, error)
}

type tradeService struct {
	repoManager    ports.RepoManager
	publisher      ports.Publisher
	cashCeiling    decimal.Decimal
	validityWindow time.Duration
}

// NewTradeService returns a TradeService persisting proposals through the
// given repo manager and notifying lifecycle events through the publisher.
func NewTradeService(
	repoManager ports.RepoManager,
	publisher ports.Publisher,
	cashCeiling decimal.Decimal,
	validityWindow time.Duration,
) TradeService {
	return &tradeService{
		repoManager:    repoManager,
		publisher:      publisher,
		cashCeiling:    cashCeiling,
		validityWindow: validityWindow,
	}
}

func (t *tradeService) PreviewOffer(
	ctx context.Context,
	targetItemId string, offeredItemIds []string,
	cashAdjustment decimal.Decimal,
) (*OfferPreview, error) {
	if err := validateProposal(offeredItemIds, cashAdjustment, t.cashCeiling); err != nil {
		return nil, err
	}

	target, err := t.getItem(ctx, targetItemId)
	if err != nil {
		return nil, err
	}

	offeredItems, err := t.getOfferedItems(ctx, offeredItemIds)
	if err != nil {
		return nil, err
	}

	offerValue := domain.ComputeOfferValue(offeredItems, cashAdjustment)
	return &OfferPreview{
		OfferValue:  offerValue,
		TargetValue: target.Price,
		Balance:     domain.ComputeBalance(offerValue, target.Price),
	}, nil
}

func (t *tradeService) SubmitProposal(
	ctx context.Context, req SubmitProposalRequest,
) (*domain.TradeProposal, error) {
	if err := validateProposal(
		req.OfferedItemIds, req.CashAdjustment, t.cashCeiling,
	); err != nil {
		return nil, err
	}

	target, err := t.getItem(ctx, req.TargetItemId)
	if err != nil {
		return nil, err
	}
	if !target.IsActive() {
		return nil, ErrItemNotAvailable
	}
	if target.SellerId == req.ProposerId {
		return nil, ErrSelfTrade
	}

	offeredItems, err := t.getOfferedItems(ctx, req.OfferedItemIds)
	if err != nil {
		return nil, err
	}
	for _, item := range offeredItems {
		if item.SellerId != req.ProposerId {
			return nil, ErrOfferedItemNotOwned
		}
		if !item.IsActive() {
			return nil, ErrOfferedItemNotAvailable
		}
	}

	offerValue := domain.ComputeOfferValue(offeredItems, req.CashAdjustment)
	proposal := domain.NewTradeProposal(
		target.Id, target.SellerId, req.ProposerId,
		req.OfferedItemIds, req.CashAdjustment, offerValue,
		req.Message, t.validityWindow,
	)

	if err := t.repoManager.TradeProposalRepository().AddProposal(
		ctx, *proposal,
	); err != nil {
		return nil, err
	}

	metrics.ProposalsSubmitted.Inc()
	log.Debugf(
		"user %s submitted proposal %s against item %s worth %s",
		req.ProposerId, proposal.Id, target.Id, offerValue,
	)
	t.publishProposalEvent(TopicTradeProposalCreated, proposal)

	return proposal, nil
}

func (t *tradeService) RespondToProposal(
	ctx context.Context, proposalId, responderId, action string,
) (*domain.TradeProposal, error) {
	if action != TradeActionAccept && action != TradeActionReject {
		return nil, ErrInvalidAction
	}

	var updated *domain.TradeProposal
	var expiredErr error
	err := t.repoManager.TradeProposalRepository().UpdateProposal(
		ctx, proposalId,
		func(p *domain.TradeProposal) (*domain.TradeProposal, error) {
			if p.TargetOwnerId != responderId {
				return nil, ErrNotAuthorized
			}

			wasPending := p.IsPending()
			var decisionErr error
			if action == TradeActionAccept {
				decisionErr = p.Accept()
			} else {
				decisionErr = p.Reject()
			}
			if decisionErr != nil {
				// the lazy expiry mark must be persisted, any other failed
				// decision leaves the proposal untouched
				if errors.Is(decisionErr, domain.ErrProposalExpired) && wasPending {
					expiredErr = decisionErr
					updated = p
					return p, nil
				}
				return nil, decisionErr
			}

			updated = p
			return p, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if expiredErr != nil {
		metrics.ProposalsExpired.Inc()
		t.publishProposalEvent(TopicTradeProposalExpired, updated)
		return nil, expiredErr
	}

	topic := TopicTradeProposalRejected
	if updated.IsAccepted() {
		topic = TopicTradeProposalAccepted
		metrics.ProposalsAccepted.Inc()
		t.warnAboutSiblingProposals(ctx, updated)
	} else {
		metrics.ProposalsRejected.Inc()
	}

	log.Debugf("proposal %s %s by user %s", proposalId, updated.Status, responderId)
	t.publishProposalEvent(topic, updated)

	return updated, nil
}

func (t *tradeService) CompleteProposal(
	ctx context.Context, proposalId string,
) (*domain.TradeProposal, error) {
	var updated *domain.TradeProposal
	err := t.repoManager.TradeProposalRepository().UpdateProposal(
		ctx, proposalId,
		func(p *domain.TradeProposal) (*domain.TradeProposal, error) {
			if err := p.Complete(); err != nil {
				return nil, err
			}
			updated = p
			return p, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if err := t.exchangeItems(ctx, updated); err != nil {
		log.WithError(err).Warnf(
			"proposal %s completed but item exchange did not fully apply",
			proposalId,
		)
	}

	metrics.ProposalsCompleted.Inc()
	t.publishProposalEvent(TopicTradeProposalCompleted, updated)

	return updated, nil
}

func (t *tradeService) GetProposal(
	ctx context.Context, proposalId string,
) (*domain.TradeProposal, error) {
	proposal, err := t.repoManager.TradeProposalRepository().GetProposal(ctx, proposalId)
	if err != nil {
		return nil, domain.ErrProposalNotFound
	}
	return proposal, nil
}

func (t *tradeService) ListProposalsForProposer(
	ctx context.Context, proposerId string,
) ([]domain.TradeProposal, error) {
	return t.repoManager.TradeProposalRepository().GetProposalsForProposer(ctx, proposerId)
}

func (t *tradeService) ListProposalsForTargetOwner(
	ctx context.Context, ownerId string,
) ([]domain.TradeProposal, error) {
	return t.repoManager.TradeProposalRepository().GetProposalsForTargetOwner(ctx, ownerId)
}

func (t *tradeService) ListProposalsForItem(
	ctx context.Context, itemId string,
) ([]domain.TradeProposal, error) {
	return t.repoManager.TradeProposalRepository().GetProposalsForItem(ctx, itemId)
}

func (t *tradeService) getItem(ctx context.Context, itemId string) (*domain.Item, error) {
	item, err := t.repoManager.ItemRepository().GetItem(ctx, itemId)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (t *tradeService) getOfferedItems(
	ctx context.Context, offeredItemIds []string,
) ([]domain.Item, error) {
	if len(offeredItemIds) == 0 {
		return nil, nil
	}
	items, err := t.repoManager.ItemRepository().GetItems(ctx, offeredItemIds)
	if err != nil {
		return nil, err
	}
	if len(items) != len(offeredItemIds) {
		return nil, domain.ErrItemNotFound
	}
	return items, nil
}

// exchangeItems hands the target item over to the proposer and every offered
// item over to the target owner once a proposal is fulfilled.
func (t *tradeService) exchangeItems(
	ctx context.Context, proposal *domain.TradeProposal,
) error {
	itemRepo := t.repoManager.ItemRepository()
	if err := itemRepo.UpdateItem(
		ctx, proposal.TargetItemId,
		func(i *domain.Item) (*domain.Item, error) {
			if err := i.TransferTo(proposal.ProposerId); err != nil {
				return nil, err
			}
			return i, nil
		},
	); err != nil {
		return err
	}

	for _, itemId := range proposal.OfferedItemIds {
		if err := itemRepo.UpdateItem(
			ctx, itemId,
			func(i *domain.Item) (*domain.Item, error) {
				if err := i.TransferTo(proposal.TargetOwnerId); err != nil {
					return nil, err
				}
				return i, nil
			},
		); err != nil {
			return err
		}
	}
	return nil
}

// warnAboutSiblingProposals surfaces the latent double-commit condition:
// accepting a proposal does not invalidate other pending proposals on the
// same item.
func (t *tradeService) warnAboutSiblingProposals(
	ctx context.Context, accepted *domain.TradeProposal,
) {
	siblings, err := t.repoManager.TradeProposalRepository().GetProposalsForItem(
		ctx, accepted.TargetItemId,
	)
	if err != nil {
		return
	}
	pending := 0
	for _, p := range siblings {
		if p.Id != accepted.Id && p.IsPending() {
			pending++
		}
	}
	if pending > 0 {
		log.Warnf(
			"item %s still has %d pending proposals after accepting %s",
			accepted.TargetItemId, pending, accepted.Id,
		)
	}
}

func (t *tradeService) publishProposalEvent(
	topic string, proposal *domain.TradeProposal,
) {
	if t.publisher == nil {
		return
	}
	payload := serializePayload(TradeProposalPayload{
		ProposalId:        proposal.Id,
		TargetItemId:      proposal.TargetItemId,
		TargetOwnerId:     proposal.TargetOwnerId,
		ProposerId:        proposal.ProposerId,
		TotalOfferedValue: proposal.TotalOfferedValue.String(),
		Status:            proposal.Status.String(),
		ExpiryTime:        proposal.ExpiryTime,
	})
	if err := t.publisher.Publish(topic, payload); err != nil {
		log.WithError(err).Warnf("failed to publish %s event", topic)
	}
}
