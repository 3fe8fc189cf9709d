package analytics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/kafka"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.Event
	fail   bool
}

func (p *recordingPublisher) PublishBatch(_ context.Context, events []kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestCollectorPublishesAllTrackedEvents(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewCollector(pub, 1000, nil)
	c.Start()

	for i := 0; i < 250; i++ {
		c.Track(LookupEvent{Kind: KindBranch, Mode: "embedded", BankCode: "0001", BranchCode: "988", Found: true})
	}
	c.Close()

	if got := pub.count(); got != 250 {
		t.Fatalf("expected 250 published events, got %d", got)
	}
	pub.mu.Lock()
	defer pub.mu.Unlock()
	ev, ok := pub.events[0].Value.(LookupEvent)
	if !ok {
		t.Fatalf("unexpected event value type %T", pub.events[0].Value)
	}
	if pub.events[0].Key != "0001" || ev.Timestamp.IsZero() {
		t.Errorf("unexpected event: key=%q %+v", pub.events[0].Key, ev)
	}
}

func TestCollectorDropsWhenFull(t *testing.T) {
	var dropped atomic.Int64
	c := NewCollector(&recordingPublisher{}, 2, func() { dropped.Add(1) })

	// Not started: the buffer fills and further events are dropped.
	for i := 0; i < 5; i++ {
		c.Track(LookupEvent{Kind: KindBank, BankCode: "0001"})
	}
	if dropped.Load() != 3 {
		t.Errorf("expected 3 dropped events, got %d", dropped.Load())
	}

	c.Start()
	c.Close()
}

func TestCollectorSurvivesPublishErrors(t *testing.T) {
	pub := &recordingPublisher{fail: true}
	c := NewCollector(pub, 10, nil)
	c.Start()
	c.Track(LookupEvent{Kind: KindBanks})
	c.Close()
	if pub.count() != 0 {
		t.Error("failed publish should not record events")
	}
}

func TestCollectorPublishesBufferedEventsOnClose(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewCollector(pub, 100, nil)
	for i := 0; i < 10; i++ {
		c.Track(LookupEvent{Kind: KindBank, BankCode: "0005"})
	}
	c.Start()
	c.Close()
	if pub.count() != 10 {
		t.Errorf("expected 10 events after drain, got %d", pub.count())
	}
}

func TestCollectorTrackDuringAndAfterClose(t *testing.T) {
	var dropped atomic.Int64
	pub := &recordingPublisher{}
	c := NewCollector(pub, 100, func() { dropped.Add(1) })
	c.Start()

	// Requests still draining during server shutdown keep tracking.
	for i := 0; i < 5; i++ {
		c.Track(LookupEvent{Kind: KindBranch, BankCode: "0001", BranchCode: "988"})
	}
	c.Close()

	if got := pub.count(); got != 5 {
		t.Fatalf("expected 5 published events, got %d", got)
	}
	if dropped.Load() != 0 {
		t.Fatalf("expected no drops before Close, got %d", dropped.Load())
	}

	c.Track(LookupEvent{Kind: KindBank, BankCode: "0001"})
	if dropped.Load() != 1 {
		t.Errorf("Track after Close should count one drop, got %d", dropped.Load())
	}
	c.Close()
}
