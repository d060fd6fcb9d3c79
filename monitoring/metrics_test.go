package monitoring

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nodeguard/ml"
)

func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metrics
				}
			}
			if metric.GetCounter() != nil {
				return metric.GetCounter().GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	return 0
}

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()
	m.ObservePrediction("svm_model", ml.Malicious, time.Millisecond)
	m.ObservePrediction("svm_model", ml.Malicious, time.Millisecond)
	m.ObservePrediction("svm_model", ml.NotMalicious, time.Millisecond)
	m.ObserveError("RF_model", &ml.InvalidNumberError{Value: "abc"})
	m.ObserveError("RF_model", errors.New("boom"))
	m.SetModels(4)

	if v := counterValue(t, m, "nodeguard_predictions_total", map[string]string{"model": "svm_model", "verdict": "malicious"}); v != 2 {
		t.Fatalf("expected 2 malicious verdicts, got %v", v)
	}
	if v := counterValue(t, m, "nodeguard_prediction_errors_total", map[string]string{"model": "RF_model", "kind": "invalid_number"}); v != 1 {
		t.Fatalf("expected 1 invalid number error, got %v", v)
	}
	if v := counterValue(t, m, "nodeguard_prediction_errors_total", map[string]string{"model": "RF_model", "kind": "inference"}); v != 1 {
		t.Fatalf("expected 1 inference error, got %v", v)
	}
	if v := counterValue(t, m, "nodeguard_registry_models", nil); v != 4 {
		t.Fatalf("expected gauge 4, got %v", v)
	}
}

func TestMetricsHandlerExposition(t *testing.T) {
	m := NewMetrics()
	m.ObservePrediction("LINEAR_model", ml.NotMalicious, time.Microsecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), `nodeguard_predictions_total{model="LINEAR_model",verdict="not malicious"} 1`) {
		t.Fatalf("missing prediction counter in exposition:\n%s", body)
	}
}
