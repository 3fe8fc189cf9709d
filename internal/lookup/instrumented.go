package lookup

import (
	"context"
	"time"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/metrics"
)

// Tracker receives one event per lookup.
type Tracker interface {
	Track(event analytics.LookupEvent)
}

// Instrumented wraps a Source, recording Prometheus counters and latency and
// forwarding lookup events to an optional Tracker.
type Instrumented struct {
	next    Source
	mode    string
	metrics *metrics.Metrics
	tracker Tracker
}

// Instrument wraps next. m and tracker may be nil.
func Instrument(next Source, mode string, m *metrics.Metrics, tracker Tracker) *Instrumented {
	return &Instrumented{next: next, mode: mode, metrics: m, tracker: tracker}
}

func (s *Instrumented) Banks(ctx context.Context) (zengin.Banks, error) {
	start := time.Now()
	banks, err := s.next.Banks(ctx)
	s.observe(ctx, analytics.KindBanks, "", "", start, true, err)
	return banks, err
}

func (s *Instrumented) Bank(ctx context.Context, code string) (zengin.Bank, bool, error) {
	start := time.Now()
	b, ok, err := s.next.Bank(ctx, code)
	s.observe(ctx, analytics.KindBank, code, "", start, ok, err)
	return b, ok, err
}

func (s *Instrumented) Branches(ctx context.Context, bankCode string) (zengin.Branches, bool, error) {
	start := time.Now()
	brs, ok, err := s.next.Branches(ctx, bankCode)
	s.observe(ctx, analytics.KindBranches, bankCode, "", start, ok, err)
	return brs, ok, err
}

func (s *Instrumented) Branch(ctx context.Context, bankCode, branchCode string) (zengin.Branch, bool, error) {
	start := time.Now()
	br, ok, err := s.next.Branch(ctx, bankCode, branchCode)
	s.observe(ctx, analytics.KindBranch, bankCode, branchCode, start, ok, err)
	return br, ok, err
}

func (s *Instrumented) observe(ctx context.Context, kind analytics.Kind, bankCode, branchCode string, start time.Time, found bool, err error) {
	elapsed := time.Since(start)
	result := "found"
	switch {
	case err != nil:
		result = "error"
	case !found:
		result = "absent"
	}
	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues(s.mode, string(kind), result).Inc()
		s.metrics.LookupLatency.WithLabelValues(s.mode, string(kind)).Observe(elapsed.Seconds())
	}
	if s.tracker != nil {
		event := analytics.LookupEvent{
			Kind:       kind,
			Mode:       s.mode,
			BankCode:   bankCode,
			BranchCode: branchCode,
			Found:      found && err == nil,
			LatencyUs:  elapsed.Microseconds(),
			Timestamp:  time.Now().UTC(),
			RequestID:  logger.RequestID(ctx),
		}
		if err != nil {
			event.Error = err.Error()
		}
		s.tracker.Track(event)
	}
}
