package events

import (
	"context"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics are the counters of the event pipeline.
type Metrics struct {
	Published *prometheus.CounterVec
}

// NewMetrics registers the counters on registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "amendments",
		Name:      "events_published_total",
		Help:      "Domain events handed to the publisher, by event name and result.",
	}, []string{"event", "result"})

	if err := registerer.Register(published); err != nil {
		return nil, err
	}
	return &Metrics{Published: published}, nil
}

// InstrumentedPublisher counts every event passing through next.
type InstrumentedPublisher struct {
	next    ports.EventPublisher
	metrics *Metrics
}

func NewInstrumentedPublisher(next ports.EventPublisher, metrics *Metrics) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, metrics: metrics}
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	err := p.next.Publish(ctx, events...)

	result := resultSuccess
	if err != nil {
		result = resultFailure
	}
	for _, e := range events {
		p.metrics.Published.WithLabelValues(e.EventName(), result).Inc()
	}
	return err
}
