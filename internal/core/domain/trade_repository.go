package domain

import "context"

// TradeProposalRepository is the abstraction for any kind of database
// intended to persist TradeProposals.
type TradeProposalRepository interface {
	// AddProposal persists a new trade proposal.
	AddProposal(ctx context.Context, proposal TradeProposal) error
	// GetProposal returns the proposal with the given id.
	GetProposal(ctx context.Context, proposalId string) (*TradeProposal, error)
	// GetProposalsForProposer returns all the proposals submitted by a user.
	GetProposalsForProposer(ctx context.Context, proposerId string) ([]TradeProposal, error)
	// GetProposalsForTargetOwner returns all the proposals addressed to a
	// user's items.
	GetProposalsForTargetOwner(ctx context.Context, ownerId string) ([]TradeProposal, error)
	// GetProposalsForItem returns all the proposals targeting an item.
	GetProposalsForItem(ctx context.Context, itemId string) ([]TradeProposal, error)
	// GetPendingProposals returns all the proposals still in pending status.
	GetPendingProposals(ctx context.Context) ([]TradeProposal, error)
	// UpdateProposal commits the changes applied by updateFn to the stored
	// proposal within a single store transaction. The closure observes the
	// latest persisted status, so a concurrent decision on the same proposal
	// cannot be overwritten.
	UpdateProposal(
		ctx context.Context,
		proposalId string,
		updateFn func(p *TradeProposal) (*TradeProposal, error),
	) error
}
