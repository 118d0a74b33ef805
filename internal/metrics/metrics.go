package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Turn outcomes reported by the transport boundary.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomePanic     = "panic"
	OutcomeMalformed = "malformed"
)

var (
	// MessagesProcessed counts handled customer messages by outcome.
	MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_messages_processed_total",
		Help: "Customer messages processed, labelled by turn outcome.",
	}, []string{"outcome"})

	// OrdersCreated counts successfully persisted orders.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatbot_orders_created_total",
		Help: "Orders successfully created.",
	})

	// OrderCreateFailures counts order persistence failures.
	OrderCreateFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatbot_order_create_failures_total",
		Help: "Order creation attempts that failed.",
	})
)

// RegisterConversationGauge exposes the live conversation count of the
// in-memory store.
func RegisterConversationGauge(count func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "chatbot_active_conversations",
		Help: "Conversations currently held in the store.",
	}, func() float64 {
		return float64(count())
	})
}
