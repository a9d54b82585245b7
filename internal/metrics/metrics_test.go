package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

// TestRecordSignUp_IncrementsCounter は会員登録カウンタが増加することを検証する。
func TestRecordSignUp_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignUp()
	c.RecordSignUp()

	if got := counterValue(t, reg, "clubhouse_signups_total"); got != 2 {
		t.Errorf("signups = %v, want 2", got)
	}
}

// TestRecordModeration_LabelsByResourceAndOperation は管理操作がラベル別に記録されることを検証する。
func TestRecordModeration_LabelsByResourceAndOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordModeration("projects", "delete")
	c.RecordModeration("projects", "create")
	c.RecordModeration("members", "update")

	if got := counterValue(t, reg, "clubhouse_moderation_operations_total"); got != 3 {
		t.Errorf("moderation ops = %v, want 3", got)
	}
}

// TestRecordSessionsCleaned_AddsCount はセッション削除数が加算されることを検証する。
func TestRecordSessionsCleaned_AddsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSessionsCleaned(3)
	c.RecordSessionsCleaned(2)

	if got := counterValue(t, reg, "clubhouse_sessions_cleaned_total"); got != 5 {
		t.Errorf("sessions cleaned = %v, want 5", got)
	}
}

// TestRecordQueryLatency_Observes はレイテンシが記録されることを検証する。
func TestRecordQueryLatency_Observes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordQueryLatency(50 * time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "clubhouse_query_latency_seconds" {
			found = true
			if mf.GetMetric()[0].GetHistogram().GetSampleCount() != 1 {
				t.Errorf("sample count = %d, want 1", mf.GetMetric()[0].GetHistogram().GetSampleCount())
			}
		}
	}
	if !found {
		t.Error("latency histogram not found")
	}
}

// TestSetupMetricsRoute_ServesMetrics は/metricsパスでメトリクスが返ることを検証する。
func TestSetupMetricsRoute_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSignIn()

	handler := SetupMetricsRoute(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "clubhouse_signins_total") {
		t.Error("response should contain clubhouse_signins_total metric")
	}
}
