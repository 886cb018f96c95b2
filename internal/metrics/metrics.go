package metrics

import (
	"codeberg.org/mutker/erraruga/internal/errors"
	"codeberg.org/mutker/erraruga/pkg/resolver"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "erraruga"

// Collector counts resolutions per tier. It implements resolver.Observer.
type Collector struct {
	resolutions *prometheus.CounterVec
	deferrals   prometheus.Counter
}

var _ resolver.Observer = (*Collector)(nil)

// NewCollector creates the counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Resolved errors by the tier that produced the message.",
		}, []string{"tier"}),
		deferrals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "custom_deferrals_total",
			Help:      "Custom rules that returned blank text and deferred to default rules.",
		}),
	}

	for _, col := range []prometheus.Collector{c.resolutions, c.deferrals} {
		if err := reg.Register(col); err != nil {
			return nil, errors.New().Wrap(errors.ErrInitMetrics, err)
		}
	}

	return c, nil
}

func (c *Collector) Resolved(tier resolver.Tier, _ string) {
	c.resolutions.WithLabelValues(string(tier)).Inc()
}

func (c *Collector) Deferred(resolver.Key) {
	c.deferrals.Inc()
}

// Snapshot returns the current resolution counts keyed by tier.
func (c *Collector) Snapshot() map[resolver.Tier]float64 {
	out := make(map[resolver.Tier]float64, 3)
	for _, tier := range []resolver.Tier{resolver.TierCustom, resolver.TierDefault, resolver.TierFallback} {
		out[tier] = counterValue(c.resolutions.WithLabelValues(string(tier)))
	}

	return out
}
