// Package metrics registers the prometheus collectors of the daemon.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ProposalsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tradepost_proposals_submitted_total",
		Help: "Number of trade proposals submitted.",
	})
	ProposalsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tradepost_proposals_accepted_total",
		Help: "Number of trade proposals accepted by the target owner.",
	})
	ProposalsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tradepost_proposals_rejected_total",
		Help: "Number of trade proposals rejected by the target owner.",
	})
	ProposalsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tradepost_proposals_expired_total",
		Help: "Number of trade proposals expired before a decision.",
	})
	ProposalsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tradepost_proposals_completed_total",
		Help: "Number of trade proposals fulfilled.",
	})
	NegotiationTurns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tradepost_negotiation_turns_total",
		Help: "Number of buyer turns forwarded to the negotiation function.",
	})
	NegotiationAcceptedOffers = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tradepost_negotiation_accepted_offers_total",
		Help: "Number of offers accepted through the local fast-path.",
	})
)

func init() {
	prometheus.MustRegister(
		ProposalsSubmitted,
		ProposalsAccepted,
		ProposalsRejected,
		ProposalsExpired,
		ProposalsCompleted,
		NegotiationTurns,
		NegotiationAcceptedOffers,
	)
}
