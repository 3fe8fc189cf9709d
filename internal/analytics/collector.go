// Package analytics publishes lookup events to Kafka from a bounded in-memory
// buffer. Tracking never blocks the lookup path: when the buffer is full the
// event is dropped and counted.
package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/kafka"
)

// Publisher is the subset of kafka.Producer the collector needs.
type Publisher interface {
	PublishBatch(ctx context.Context, events []kafka.Event) error
}

const (
	maxBatch       = 100
	publishTimeout = 5 * time.Second
)

type Collector struct {
	publisher Publisher
	eventCh   chan LookupEvent
	onDrop    func()
	logger    *slog.Logger
	done      chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewCollector creates a Collector. onDrop, if non-nil, is called for every
// dropped event.
func NewCollector(publisher Publisher, bufferSize int, onDrop func()) *Collector {
	if bufferSize <= 0 {
		bufferSize = 10000
	}
	return &Collector{
		publisher: publisher,
		eventCh:   make(chan LookupEvent, bufferSize),
		onDrop:    onDrop,
		logger:    slog.Default().With("component", "analytics-collector"),
		done:      make(chan struct{}),
	}
}

// Start launches the publish loop. The loop runs until Close, so events
// tracked by requests still in flight during shutdown are published too.
func (c *Collector) Start() {
	go func() {
		defer close(c.done)
		for event := range c.eventCh {
			c.publish(c.collectBatch(event))
		}
	}()
	c.logger.Info("analytics collector started", "buffer_size", cap(c.eventCh))
}

// Track enqueues an event without blocking. Events tracked after Close are
// dropped.
func (c *Collector) Track(event LookupEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		c.drop("collector closed")
		return
	}
	select {
	case c.eventCh <- event:
	default:
		c.drop("buffer full")
	}
}

// Close stops accepting events and waits for the buffer to be published.
// Start must have been called.
func (c *Collector) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.eventCh)
	}
	c.mu.Unlock()
	<-c.done
}

func (c *Collector) drop(reason string) {
	if c.onDrop != nil {
		c.onDrop()
	}
	c.logger.Warn("analytics event dropped", "reason", reason)
}

// collectBatch takes first plus whatever else is already buffered, up to
// maxBatch events.
func (c *Collector) collectBatch(first LookupEvent) []LookupEvent {
	batch := []LookupEvent{first}
	for len(batch) < maxBatch {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				return batch
			}
			batch = append(batch, event)
		default:
			return batch
		}
	}
	return batch
}

func (c *Collector) publish(batch []LookupEvent) {
	events := make([]kafka.Event, 0, len(batch))
	for _, e := range batch {
		events = append(events, kafka.Event{Key: e.BankCode, Value: e})
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := c.publisher.PublishBatch(ctx, events); err != nil {
		c.logger.Error("failed to publish lookup events", "count", len(events), "error", err)
	}
}
