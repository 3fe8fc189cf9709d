package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistryRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.LookupsTotal.WithLabelValues("preloaded", "bank", "found").Inc()
	m.DatasetBanks.Set(5)
	m.StoreCircuitState.WithLabelValues("redis").Set(1)

	if got := testutil.ToFloat64(m.DatasetBanks); got != 5 {
		t.Errorf("dataset banks = %v", got)
	}
	n, err := testutil.GatherAndCount(reg, "zengin_lookups_total", "zengin_store_circuit_state")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 2 {
		t.Errorf("gathered %d series, want 2", n)
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	NewWithRegistry(reg)
}

func TestHandlerScrapesOwnRegistry(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	other := NewWithRegistry(prometheus.NewRegistry())
	m.LookupsTotal.WithLabelValues("embedded", "branch", "found").Add(3)
	other.LookupsTotal.WithLabelValues("redis", "bank", "error").Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	text := string(body)

	want := `zengin_lookups_total{kind="branch",mode="embedded",result="found"} 3`
	if !strings.Contains(text, want) {
		t.Errorf("scrape missing %q:\n%s", want, text)
	}
	if strings.Contains(text, `mode="redis"`) {
		t.Error("scrape includes series from another registry")
	}
}
