package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics records order lifecycle and loyalty activity.
type WorkflowMetrics struct {
	orderDuration  *prometheus.HistogramVec
	ordersCreated  prometheus.Counter
	transitions    *prometheus.CounterVec
	ordersCanceled prometheus.Counter
	pointsRedeemed prometheus.Counter
	giftsIssued    prometheus.Counter
}

// NewWorkflowMetrics registers the workflow metrics on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	orderDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_operation_duration_seconds",
		Help:    "Duration of order workflow operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders accepted into the workflow.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Order status transitions by target status.",
	}, []string{"status"})
	ordersCanceled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_canceled_total",
		Help: "Orders moved to the cancelled status.",
	})
	pointsRedeemed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_points_redeemed_total",
		Help: "Loyalty points credited through redemptions.",
	})
	giftsIssued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_gifts_issued_total",
		Help: "Gift codes generated for customers.",
	})
	reg.MustRegister(orderDuration, ordersCreated, transitions, ordersCanceled, pointsRedeemed, giftsIssued)
	return &WorkflowMetrics{
		orderDuration:  orderDuration,
		ordersCreated:  ordersCreated,
		transitions:    transitions,
		ordersCanceled: ordersCanceled,
		pointsRedeemed: pointsRedeemed,
		giftsIssued:    giftsIssued,
	}
}

// ObserveOrderOperation records the duration for the named workflow operation.
func (w *WorkflowMetrics) ObserveOrderOperation(operation string, duration time.Duration) {
	if w == nil || w.orderDuration == nil {
		return
	}
	w.orderDuration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncOrdersCreated increments the order creation counter.
func (w *WorkflowMetrics) IncOrdersCreated() {
	if w == nil || w.ordersCreated == nil {
		return
	}
	w.ordersCreated.Inc()
}

// IncTransition increments the transition counter for the target status.
func (w *WorkflowMetrics) IncTransition(status string) {
	if w == nil || w.transitions == nil {
		return
	}
	w.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncOrdersCanceled increments the cancellation counter.
func (w *WorkflowMetrics) IncOrdersCanceled() {
	if w == nil || w.ordersCanceled == nil {
		return
	}
	w.ordersCanceled.Inc()
}

// AddPointsRedeemed adds the credited points to the redemption counter.
func (w *WorkflowMetrics) AddPointsRedeemed(points int) {
	if w == nil || w.pointsRedeemed == nil || points <= 0 {
		return
	}
	w.pointsRedeemed.Add(float64(points))
}

// IncGiftsIssued increments the gift issuance counter.
func (w *WorkflowMetrics) IncGiftsIssued() {
	if w == nil || w.giftsIssued == nil {
		return
	}
	w.giftsIssued.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
