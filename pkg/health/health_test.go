package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRunAggregatesWorstStatus(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Check
		want   Status
	}{
		{"all up", map[string]Check{"dataset": Static(StatusUp, "")}, StatusUp},
		{"one degraded", map[string]Check{
			"dataset": Static(StatusUp, ""),
			"redis":   Static(StatusDegraded, "slow"),
		}, StatusDegraded},
		{"one down", map[string]Check{
			"dataset": Static(StatusDown, "not loaded"),
			"redis":   Static(StatusDegraded, "slow"),
		}, StatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker()
			for name, check := range tt.checks {
				c.Register(name, check)
			}
			report := c.Run(context.Background())
			if report.Status != tt.want {
				t.Errorf("status = %s, want %s", report.Status, tt.want)
			}
			if len(report.Components) != len(tt.checks) {
				t.Errorf("expected %d components, got %d", len(tt.checks), len(report.Components))
			}
		})
	}
}

func TestReadyHandler(t *testing.T) {
	c := NewChecker()
	c.SetInfo("mode", "embedded")
	c.Register("dataset", Static(StatusUp, "5 banks"))

	rec := httptest.NewRecorder()
	c.ReadyHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.Info["mode"] != "embedded" {
		t.Errorf("expected mode info, got %v", report.Info)
	}

	c.Register("redis", Static(StatusDown, "connection refused"))
	rec = httptest.NewRecorder()
	c.ReadyHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
