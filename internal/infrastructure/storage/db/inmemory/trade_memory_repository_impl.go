package inmemory

import (
	"context"
	"sync"

	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

type tradeRepositoryImpl struct {
	store *tradeInmemoryStore
}

// NewTradeProposalRepositoryImpl returns a new inmemory
// TradeProposalRepository implementation.
func NewTradeProposalRepositoryImpl() domain.TradeProposalRepository {
	return &tradeRepositoryImpl{
		store: &tradeInmemoryStore{
			proposals: map[string]domain.TradeProposal{},
			locker:    &sync.Mutex{},
		},
	}
}

func (r tradeRepositoryImpl) AddProposal(
	_ context.Context, proposal domain.TradeProposal,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.proposals[proposal.Id]; ok {
		return ErrDuplicateKey
	}
	r.store.proposals[proposal.Id] = proposal
	return nil
}

func (r tradeRepositoryImpl) GetProposal(
	_ context.Context, proposalId string,
) (*domain.TradeProposal, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getProposal(proposalId)
}

func (r tradeRepositoryImpl) GetProposalsForProposer(
	_ context.Context, proposerId string,
) ([]domain.TradeProposal, error) {
	return r.findProposals(func(p domain.TradeProposal) bool {
		return p.ProposerId == proposerId
	}), nil
}

func (r tradeRepositoryImpl) GetProposalsForTargetOwner(
	_ context.Context, ownerId string,
) ([]domain.TradeProposal, error) {
	return r.findProposals(func(p domain.TradeProposal) bool {
		return p.TargetOwnerId == ownerId
	}), nil
}

func (r tradeRepositoryImpl) GetProposalsForItem(
	_ context.Context, itemId string,
) ([]domain.TradeProposal, error) {
	return r.findProposals(func(p domain.TradeProposal) bool {
		return p.TargetItemId == itemId
	}), nil
}

func (r tradeRepositoryImpl) GetPendingProposals(
	_ context.Context,
) ([]domain.TradeProposal, error) {
	return r.findProposals(func(p domain.TradeProposal) bool {
		return p.Status.Code == domain.ProposalStatusCodePending
	}), nil
}

// UpdateProposal runs updateFn while holding the store lock, so concurrent
// decisions on the same proposal serialize and the losing one observes the
// already-transitioned status.
func (r tradeRepositoryImpl) UpdateProposal(
	_ context.Context,
	proposalId string,
	updateFn func(p *domain.TradeProposal) (*domain.TradeProposal, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentProposal, err := r.getProposal(proposalId)
	if err != nil {
		return err
	}

	updatedProposal, err := updateFn(currentProposal)
	if err != nil {
		return err
	}

	r.store.proposals[proposalId] = *updatedProposal
	return nil
}

func (r tradeRepositoryImpl) getProposal(
	proposalId string,
) (*domain.TradeProposal, error) {
	proposal, ok := r.store.proposals[proposalId]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	return &proposal, nil
}

func (r tradeRepositoryImpl) findProposals(
	filter func(p domain.TradeProposal) bool,
) []domain.TradeProposal {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	proposals := make([]domain.TradeProposal, 0)
	for _, proposal := range r.store.proposals {
		if filter(proposal) {
			proposals = append(proposals, proposal)
		}
	}
	return proposals
}
