package metrics

import (
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics implements the pipeline counters on Prometheus. Counter
// increments never block and never fail the caller.

type PaymentMetrics struct {
	generated prometheus.Counter
	saved     prometheus.Counter
}

var _ interfaces.IPaymentMetrics = (*PaymentMetrics)(nil)

func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PaymentMetrics{
		generated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payment_mock_requests_total",
			Help: "Total number of mock payment requests",
		}),
		saved: factory.NewCounter(prometheus.CounterOpts{
			Name: "payment_saves_total",
			Help: "Total number of payments saved to the store",
		}),
	}
}

func (m *PaymentMetrics) IncrementGenerated() {
	m.generated.Inc()
}

func (m *PaymentMetrics) IncrementSaved() {
	m.saved.Inc()
}
