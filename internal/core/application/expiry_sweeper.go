package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	"github.com/tradepost/tradepost-daemon/internal/core/ports"
	"github.com/tradepost/tradepost-daemon/internal/metrics"
)

// ExpirySweeper periodically marks overdue pending proposals as expired, so
// that proposals nobody ever responds to do not stay pending forever.
type ExpirySweeper struct {
	repoManager ports.RepoManager
	publisher   ports.Publisher
	interval    time.Duration
	quit        chan struct{}
}

// NewExpirySweeper returns a sweeper running at the given interval.
func NewExpirySweeper(
	repoManager ports.RepoManager,
	publisher ports.Publisher,
	interval time.Duration,
) *ExpirySweeper {
	return &ExpirySweeper{
		repoManager: repoManager,
		publisher:   publisher,
		interval:    interval,
		quit:        make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called.
func (s *ExpirySweeper) Start() {
	log.Debugf("expiry sweep running every %s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.quit:
			return
		}
	}
}

// Stop terminates the sweep loop.
func (s *ExpirySweeper) Stop() {
	close(s.quit)
}

// Sweep expires every overdue pending proposal. Exposed so that tests and
// the daemon shutdown path can trigger a run directly.
func (s *ExpirySweeper) Sweep() {
	ctx := context.Background()
	pending, err := s.repoManager.TradeProposalRepository().GetPendingProposals(ctx)
	if err != nil {
		log.WithError(err).Warn("expiry sweep could not list pending proposals")
		return
	}

	for i := range pending {
		proposal := pending[i]
		if !proposal.IsExpired() {
			continue
		}

		var expired *domain.TradeProposal
		if err := s.repoManager.TradeProposalRepository().UpdateProposal(
			ctx, proposal.Id,
			func(p *domain.TradeProposal) (*domain.TradeProposal, error) {
				if _, err := p.Expire(); err != nil {
					return nil, err
				}
				expired = p
				return p, nil
			},
		); err != nil {
			// a concurrent response may have decided the proposal first
			continue
		}

		metrics.ProposalsExpired.Inc()
		log.Debugf("proposal %s expired by sweep", expired.Id)
		s.publishExpired(expired)
	}
}

func (s *ExpirySweeper) publishExpired(proposal *domain.TradeProposal) {
	if s.publisher == nil {
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
	if err := s.publisher.Publish(TopicTradeProposalExpired, payload); err != nil {
		log.WithError(err).Warn("failed to publish expiry event")
	}
}
