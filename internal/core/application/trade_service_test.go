package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradepost/tradepost-daemon/internal/core/application"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	"github.com/tradepost/tradepost-daemon/internal/core/ports"
	"github.com/tradepost/tradepost-daemon/internal/infrastructure/storage/db/inmemory"
)

var (
	cashCeiling    = decimal.NewFromInt(500)
	validityWindow = time.Hour
)

type capturingPublisher struct {
	lock   sync.Mutex
	topics []string
}

func (p *capturingPublisher) Publish(topic string, _ string) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *capturingPublisher) published() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]string{}, p.topics...)
}

func newTradeService(
	t *testing.T, window time.Duration,
) (application.TradeService, ports.RepoManager, *capturingPublisher) {
	t.Helper()

	repoManager := inmemory.NewRepoManager()
	publisher := &capturingPublisher{}
	svc := application.NewTradeService(repoManager, publisher, cashCeiling, window)
	return svc, repoManager, publisher
}

func addTestItem(
	t *testing.T, repoManager ports.RepoManager, title string, price int64, sellerId string,
) *domain.Item {
	t.Helper()

	item := domain.NewItem(title, decimal.NewFromInt(price), sellerId)
	require.NoError(t, repoManager.ItemRepository().AddItem(context.Background(), *item))
	return item
}

func TestSubmitProposal(t *testing.T) {
	svc, repoManager, publisher := newTradeService(t, validityWindow)
	ctx := context.Background()

	target := addTestItem(t, repoManager, "Vintage amp", 480, "seller-1")
	offered := addTestItem(t, repoManager, "Electric guitar", 400, "buyer-1")

	proposal, err := svc.SubmitProposal(ctx, application.SubmitProposalRequest{
		TargetItemId:   target.Id,
		ProposerId:     "buyer-1",
		OfferedItemIds: []string{offered.Id},
		CashAdjustment: decimal.NewFromInt(80),
		Message:        "fair swap?",
	})
	require.NoError(t, err)
	require.True(t, proposal.IsPending())
	require.True(t, proposal.TotalOfferedValue.Equal(decimal.NewFromInt(480)))
	require.Equal(t, []string{application.TopicTradeProposalCreated}, publisher.published())

	stored, err := svc.GetProposal(ctx, proposal.Id)
	require.NoError(t, err)
	require.Equal(t, proposal.Id, stored.Id)
}

func TestFailingSubmitProposal(t *testing.T) {
	svc, repoManager, _ := newTradeService(t, validityWindow)
	ctx := context.Background()

	target := addTestItem(t, repoManager, "Vintage amp", 480, "seller-1")
	notOwned := addTestItem(t, repoManager, "Road bike", 350, "someone-else")
	traded := addTestItem(t, repoManager, "Old chair", 20, "buyer-1")
	require.NoError(t, repoManager.ItemRepository().UpdateItem(
		ctx, traded.Id,
		func(i *domain.Item) (*domain.Item, error) {
			if err := i.TransferTo("new-owner"); err != nil {
				return nil, err
			}
			return i, nil
		},
	))

	tests := []struct {
		name        string
		req         application.SubmitProposalRequest
		expectedErr error
	}{
		{
			name: "empty_offer",
			req: application.SubmitProposalRequest{
				TargetItemId: target.Id,
				ProposerId:   "buyer-1",
			},
			expectedErr: application.ErrEmptyOffer,
		},
		{
			name: "cash_over_ceiling",
			req: application.SubmitProposalRequest{
				TargetItemId:   target.Id,
				ProposerId:     "buyer-1",
				CashAdjustment: decimal.NewFromInt(501),
			},
			expectedErr: application.ErrCashCeilingExceeded,
		},
		{
			name: "negative_cash",
			req: application.SubmitProposalRequest{
				TargetItemId:   target.Id,
				ProposerId:     "buyer-1",
				CashAdjustment: decimal.NewFromInt(-1),
			},
			expectedErr: application.ErrNegativeCashAdjustment,
		},
		{
			name: "self_trade",
			req: application.SubmitProposalRequest{
				TargetItemId:   target.Id,
				ProposerId:     "seller-1",
				CashAdjustment: decimal.NewFromInt(100),
			},
			expectedErr: application.ErrSelfTrade,
		},
		{
			name: "unknown_target",
			req: application.SubmitProposalRequest{
				TargetItemId:   "missing",
				ProposerId:     "buyer-1",
				CashAdjustment: decimal.NewFromInt(100),
			},
			expectedErr: domain.ErrItemNotFound,
		},
		{
			name: "offered_item_not_owned",
			req: application.SubmitProposalRequest{
				TargetItemId:   target.Id,
				ProposerId:     "buyer-1",
				OfferedItemIds: []string{notOwned.Id},
			},
			expectedErr: application.ErrOfferedItemNotOwned,
		},
		{
			name: "offered_item_not_active",
			req: application.SubmitProposalRequest{
				TargetItemId:   target.Id,
				ProposerId:     "new-owner",
				OfferedItemIds: []string{traded.Id},
			},
			expectedErr: application.ErrOfferedItemNotAvailable,
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitProposal(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestRespondToProposal(t *testing.T) {
	t.Run("accept", func(t *testing.T) {
		svc, repoManager, publisher := newTradeService(t, validityWindow)
		ctx := context.Background()
		proposal := submitTestProposal(t, svc, repoManager)

		updated, err := svc.RespondToProposal(ctx, proposal.Id, "seller-1", "accept")
		require.NoError(t, err)
		require.True(t, updated.IsAccepted())
		require.Contains(t, publisher.published(), application.TopicTradeProposalAccepted)
	})

	t.Run("reject", func(t *testing.T) {
		svc, repoManager, publisher := newTradeService(t, validityWindow)
		ctx := context.Background()
		proposal := submitTestProposal(t, svc, repoManager)

		updated, err := svc.RespondToProposal(ctx, proposal.Id, "seller-1", "reject")
		require.NoError(t, err)
		require.True(t, updated.IsRejected())
		require.Contains(t, publisher.published(), application.TopicTradeProposalRejected)
	})

	t.Run("second_decision_conflicts", func(t *testing.T) {
		svc, repoManager, _ := newTradeService(t, validityWindow)
		ctx := context.Background()
		proposal := submitTestProposal(t, svc, repoManager)

		_, err := svc.RespondToProposal(ctx, proposal.Id, "seller-1", "accept")
		require.NoError(t, err)

		_, err = svc.RespondToProposal(ctx, proposal.Id, "seller-1", "accept")
		require.ErrorIs(t, err, domain.ErrProposalAlreadyDecided)
	})

	t.Run("not_the_target_owner", func(t *testing.T) {
		svc, repoManager, _ := newTradeService(t, validityWindow)
		ctx := context.Background()
		proposal := submitTestProposal(t, svc, repoManager)

		_, err := svc.RespondToProposal(ctx, proposal.Id, "intruder", "accept")
		require.ErrorIs(t, err, application.ErrNotAuthorized)

		stored, err := svc.GetProposal(ctx, proposal.Id)
		require.NoError(t, err)
		require.True(t, stored.IsPending())
	})

	t.Run("invalid_action", func(t *testing.T) {
		svc, repoManager, _ := newTradeService(t, validityWindow)
		proposal := submitTestProposal(t, svc, repoManager)

		_, err := svc.RespondToProposal(
			context.Background(), proposal.Id, "seller-1", "maybe",
		)
		require.ErrorIs(t, err, application.ErrInvalidAction)
	})

	t.Run("overdue_proposal_is_marked_expired", func(t *testing.T) {
		svc, repoManager, publisher := newTradeService(t, -time.Minute)
		ctx := context.Background()
		proposal := submitTestProposal(t, svc, repoManager)

		_, err := svc.RespondToProposal(ctx, proposal.Id, "seller-1", "accept")
		require.ErrorIs(t, err, domain.ErrProposalExpired)

		// the expiry mark is persisted, not just computed on the fly
		stored, err := svc.GetProposal(ctx, proposal.Id)
		require.NoError(t, err)
		require.Equal(t, domain.ProposalStatusCodeExpired, stored.Status.Code)
		require.Contains(t, publisher.published(), application.TopicTradeProposalExpired)

		// and a later response conflicts with the persisted mark
		_, err = svc.RespondToProposal(ctx, proposal.Id, "seller-1", "accept")
		require.ErrorIs(t, err, domain.ErrProposalExpired)
	})
}

func TestCompleteProposal(t *testing.T) {
	svc, repoManager, publisher := newTradeService(t, validityWindow)
	ctx := context.Background()
	proposal := submitTestProposal(t, svc, repoManager)

	_, err := svc.RespondToProposal(ctx, proposal.Id, "seller-1", "accept")
	require.NoError(t, err)

	completed, err := svc.CompleteProposal(ctx, proposal.Id)
	require.NoError(t, err)
	require.True(t, completed.IsCompleted())
	require.Contains(t, publisher.published(), application.TopicTradeProposalCompleted)

	target, err := repoManager.ItemRepository().GetItem(ctx, proposal.TargetItemId)
	require.NoError(t, err)
	require.Equal(t, "buyer-1", target.SellerId)
	require.Equal(t, domain.ItemStatusTraded, target.Status)

	offered, err := repoManager.ItemRepository().GetItem(ctx, proposal.OfferedItemIds[0])
	require.NoError(t, err)
	require.Equal(t, "seller-1", offered.SellerId)
}

func TestFailingCompleteProposal(t *testing.T) {
	svc, repoManager, _ := newTradeService(t, validityWindow)
	proposal := submitTestProposal(t, svc, repoManager)

	_, err := svc.CompleteProposal(context.Background(), proposal.Id)
	require.ErrorIs(t, err, domain.ErrProposalMustBeAccepted)
}

func TestPreviewOffer(t *testing.T) {
	svc, repoManager, _ := newTradeService(t, validityWindow)
	ctx := context.Background()

	target := addTestItem(t, repoManager, "Vintage amp", 480, "seller-1")
	offered := addTestItem(t, repoManager, "Electric guitar", 400, "buyer-1")

	preview, err := svc.PreviewOffer(
		ctx, target.Id, []string{offered.Id}, decimal.NewFromInt(80),
	)
	require.NoError(t, err)
	require.True(t, preview.OfferValue.Equal(decimal.NewFromInt(480)))
	require.True(t, preview.TargetValue.Equal(decimal.NewFromInt(480)))
	require.Equal(t, domain.BalanceEven, preview.Balance.Direction)
}

func submitTestProposal(
	t *testing.T, svc application.TradeService, repoManager ports.RepoManager,
) *domain.TradeProposal {
	t.Helper()

	target := addTestItem(t, repoManager, "Vintage amp", 480, "seller-1")
	offered := addTestItem(t, repoManager, "Electric guitar", 400, "buyer-1")

	proposal, err := svc.SubmitProposal(
		context.Background(), application.SubmitProposalRequest{
			TargetItemId:   target.Id,
			ProposerId:     "buyer-1",
			OfferedItemIds: []string{offered.Id},
			CashAdjustment: decimal.NewFromInt(80),
		},
	)
	require.NoError(t, err)
	return proposal
}
