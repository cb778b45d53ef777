package metrics

import (
	"strconv"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type CollectiveMetrics struct {
	ProposalsTotal   metrics.Counter
	VotesTotal       metrics.Counter
	ClosedTotal      metrics.Counter
	DispatchTotal    metrics.Counter
	PendingProposals metrics.Gauge
}

// AddProposal counts a proposal; `kind` is `immediate` for the proposals
// dispatched without voting, `motion` otherwise.
func (c *CollectiveMetrics) AddProposal(kind string) {
	c.ProposalsTotal.With(CollectiveKind, kind).Add(1)
}

func (c *CollectiveMetrics) AddVote(approve bool) {
	c.VotesTotal.With(CollectiveApprove, strconv.FormatBool(approve)).Add(1)
}

func (c *CollectiveMetrics) AddClosed(result string) {
	c.ClosedTotal.With(CollectiveResult, result).Add(1)
}

func (c *CollectiveMetrics) AddDispatch(err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	c.DispatchTotal.With(CollectiveResult, result).Add(1)
}

func (c *CollectiveMetrics) AddPending(delta int) {
	c.PendingProposals.Add(float64(delta))
}

func PromCollectiveMetrics() *CollectiveMetrics {
	return &CollectiveMetrics{
		ProposalsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: CollectiveSubsystem,
			Name:      "proposals_total",
			Help:      "Total number of accepted proposals.",
		}, []string{CollectiveKind}),
		VotesTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: CollectiveSubsystem,
			Name:      "votes_total",
			Help:      "Total number of accepted votes.",
		}, []string{CollectiveApprove}),
		ClosedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: CollectiveSubsystem,
			Name:      "closed_total",
			Help:      "Total number of closed proposals.",
		}, []string{CollectiveResult}),
		DispatchTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: CollectiveSubsystem,
			Name:      "dispatch_total",
			Help:      "Total number of dispatched actions.",
		}, []string{CollectiveResult}),
		PendingProposals: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: CollectiveSubsystem,
			Name:      "pending_proposals",
			Help:      "Number of pending proposals of all rooms.",
		}, []string{}),
	}
}

func NopCollectiveMetrics() *CollectiveMetrics {
	return &CollectiveMetrics{
		ProposalsTotal:   discard.NewCounter(),
		VotesTotal:       discard.NewCounter(),
		ClosedTotal:      discard.NewCounter(),
		DispatchTotal:    discard.NewCounter(),
		PendingProposals: discard.NewGauge(),
	}
}
