package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

type tradeRepositoryImpl struct {
	db *DbManager
}

// NewTradeProposalRepositoryImpl returns a badger-backed
// TradeProposalRepository implementation.
func NewTradeProposalRepositoryImpl(db *DbManager) domain.TradeProposalRepository {
	return tradeRepositoryImpl{db: db}
}

func (t tradeRepositoryImpl) AddProposal(
	_ context.Context, proposal domain.TradeProposal,
) error {
	return t.db.Store.Insert(proposal.Id, proposal)
}

func (t tradeRepositoryImpl) GetProposal(
	_ context.Context, proposalId string,
) (*domain.TradeProposal, error) {
	var proposal domain.TradeProposal
	if err := t.db.Store.Get(proposalId, &proposal); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (t tradeRepositoryImpl) GetProposalsForProposer(
	_ context.Context, proposerId string,
) ([]domain.TradeProposal, error) {
	return t.findProposals(badgerhold.Where("ProposerId").Eq(proposerId))
}

func (t tradeRepositoryImpl) GetProposalsForTargetOwner(
	_ context.Context, ownerId string,
) ([]domain.TradeProposal, error) {
	return t.findProposals(badgerhold.Where("TargetOwnerId").Eq(ownerId))
}

func (t tradeRepositoryImpl) GetProposalsForItem(
	_ context.Context, itemId string,
) ([]domain.TradeProposal, error) {
	return t.findProposals(badgerhold.Where("TargetItemId").Eq(itemId))
}

func (t tradeRepositoryImpl) GetPendingProposals(
	_ context.Context,
) ([]domain.TradeProposal, error) {
	return t.findProposals(
		badgerhold.Where("Status.Code").Eq(domain.ProposalStatusCodePending),
	)
}

// UpdateProposal runs updateFn inside a single read-write badger
// transaction. The closure observes the latest committed status, so two
// concurrent decisions on the same proposal cannot both see it pending.
func (t tradeRepositoryImpl) UpdateProposal(
	_ context.Context,
	proposalId string,
	updateFn func(p *domain.TradeProposal) (*domain.TradeProposal, error),
) error {
	return t.db.Store.Badger().Update(func(tx *badger.Txn) error {
		var proposal domain.TradeProposal
		if err := t.db.Store.TxGet(tx, proposalId, &proposal); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrProposalNotFound
			}
			return err
		}

		updatedProposal, err := updateFn(&proposal)
		if err != nil {
			return err
		}

		return t.db.Store.TxUpdate(tx, proposalId, *updatedProposal)
	})
}

func (t tradeRepositoryImpl) findProposals(
	query *badgerhold.Query,
) ([]domain.TradeProposal, error) {
	var proposals []domain.TradeProposal
	if err := t.db.Store.Find(&proposals, query); err != nil {
		return nil, err
	}
	if proposals == nil {
		proposals = make([]domain.TradeProposal, 0)
	}
	return proposals, nil
}
