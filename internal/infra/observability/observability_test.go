package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestObservePersistenceFailure(t *testing.T) {
	c := PersistenceFailures.WithLabelValues("append")
	before := counterValue(t, c)

	ObservePersistenceFailure("append")
	ObservePersistenceFailure("append")

	if got := counterValue(t, c); got != before+2 {
		t.Errorf("append failures = %v, want %v", got, before+2)
	}
}

func TestMetrics_Registered(t *testing.T) {
	RecordsDeleted.Inc()
	Classifications.WithLabelValues("Joyful").Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	want := map[string]bool{
		"moodmap_journal_records_deleted_total":     false,
		"moodmap_classifier_classifications_total": false,
	}
	for _, f := range families {
		if _, ok := want[f.GetName()]; ok {
			want[f.GetName()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("metric %s not registered", name)
		}
	}
}
