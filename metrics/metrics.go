package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics holds the service's prometheus collectors.
type PaymentMetrics struct {
	PaymentsCreatedTotal       prometheus.CounterVec
	PaymentsCreatedAmountTotal prometheus.CounterVec
	GatewayErrorsTotal         prometheus.Counter
	WebhookDeliveriesTotal     prometheus.CounterVec
	WebhookProcessingDuration  prometheus.Histogram
}

// NewPaymentMetrics registers and returns the service metrics.
func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Number of collect requests accepted by the gateway",
			},
			[]string{"school_id", "gateway"},
		),
		PaymentsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_amount_total",
				Help: "Total requested amount of accepted collect requests",
			},
			[]string{"school_id", "gateway"},
		),
		GatewayErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_errors_total",
				Help: "Number of failed collect-request calls to the gateway",
			},
		),
		WebhookDeliveriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_deliveries_total",
				Help: "Number of inbound webhook deliveries by processing outcome",
			},
			[]string{"outcome"},
		),
		WebhookProcessingDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "webhook_processing_duration_seconds",
				Help:    "Time spent reconciling one webhook delivery",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),
	}
}

// RecordPaymentCreated records one accepted collect request.
func (m *PaymentMetrics) RecordPaymentCreated(schoolID, gateway string, amount float64) {
	if m == nil {
		return
	}
	m.PaymentsCreatedTotal.WithLabelValues(schoolID, gateway).Inc()
	m.PaymentsCreatedAmountTotal.WithLabelValues(schoolID, gateway).Add(amount)
}

// RecordGatewayError records one failed gateway call.
func (m *PaymentMetrics) RecordGatewayError() {
	if m == nil {
		return
	}
	m.GatewayErrorsTotal.Inc()
}

// RecordWebhookDelivery records one delivery and how long it took to process.
func (m *PaymentMetrics) RecordWebhookDelivery(outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.WebhookDeliveriesTotal.WithLabelValues(outcome).Inc()
	m.WebhookProcessingDuration.Observe(durationSeconds)
}
