package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestWorkflowMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewWorkflowMetrics(reg)

	metrics.ObserveOrderOperation("create", 120*time.Millisecond)
	metrics.IncOrdersCreated()
	metrics.IncTransition("READY")
	metrics.IncOrdersCanceled()
	metrics.AddPointsRedeemed(7)
	metrics.IncGiftsIssued()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "order_transitions_total", "status", "READY"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected transitions=1, got %f", got)
	}

	if got := plainCounterValue(t, mfs, "orders_created_total"); got != 1 {
		t.Fatalf("expected orders_created_total=1, got %f", got)
	}
	if got := plainCounterValue(t, mfs, "orders_canceled_total"); got != 1 {
		t.Fatalf("expected orders_canceled_total=1, got %f", got)
	}
	if got := plainCounterValue(t, mfs, "loyalty_points_redeemed_total"); got != 7 {
		t.Fatalf("expected loyalty_points_redeemed_total=7, got %f", got)
	}
	if got := plainCounterValue(t, mfs, "loyalty_gifts_issued_total"); got != 1 {
		t.Fatalf("expected loyalty_gifts_issued_total=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "order_operation_duration_seconds", "operation", "create"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestWorkflowMetricsNilSafe(t *testing.T) {
	var metrics *WorkflowMetrics
	metrics.IncOrdersCreated()
	metrics.AddPointsRedeemed(3)

	empty := NewWorkflowMetrics(nil)
	empty.IncGiftsIssued()
	empty.ObserveOrderOperation("create", time.Second)
}

func plainCounterValue(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		t.Fatalf("metric %q not found", name)
	}
	metrics := mf.GetMetric()
	if len(metrics) != 1 {
		t.Fatalf("expected one series for %q, got %d", name, len(metrics))
	}
	return metrics[0].GetCounter().GetValue()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("histogram %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
