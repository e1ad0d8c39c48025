package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradepost/tradepost-daemon/internal/core/application"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
)

func TestExpirySweep(t *testing.T) {
	svc, repoManager, publisher := newTradeService(t, -time.Minute)
	ctx := context.Background()

	overdue := submitTestProposal(t, svc, repoManager)

	freshSvc := application.NewTradeService(repoManager, publisher, cashCeiling, time.Hour)
	fresh := submitTestProposal(t, freshSvc, repoManager)

	sweeper := application.NewExpirySweeper(repoManager, publisher, time.Minute)
	sweeper.Sweep()

	stored, err := svc.GetProposal(ctx, overdue.Id)
	require.NoError(t, err)
	require.Equal(t, domain.ProposalStatusCodeExpired, stored.Status.Code)
	require.Contains(t, publisher.published(), application.TopicTradeProposalExpired)

	stored, err = svc.GetProposal(ctx, fresh.Id)
	require.NoError(t, err)
	require.True(t, stored.IsPending())

	t.Run("sweep_is_idempotent", func(t *testing.T) {
		sweeper.Sweep()

		stored, err := svc.GetProposal(ctx, overdue.Id)
		require.NoError(t, err)
		require.Equal(t, domain.ProposalStatusCodeExpired, stored.Status.Code)
	})
}
