// Package events provides the in-process event bus connecting the store,
// the application state, and the presentation layer: storage-change
// notifications for cross-instance rehydration, and transient auto-dismissing
// notices.
package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/basetic/osint-terminal/internal/id"
	"github.com/basetic/osint-terminal/internal/store"
)

// DefaultNoticeDelay is how long a notice stays up before auto-dismissing.
const DefaultNoticeDelay = 4 * time.Second

// Subscriber is a registered event consumer.
type Subscriber struct {
	ID        string
	EventChan chan Event
}

// Bus fans events out to subscribers. Sends are non-blocking; a slow
// subscriber drops events rather than stalling the publisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	logger      *slog.Logger
	noticeDelay time.Duration

	closedMu sync.RWMutex
	closed   bool
}

// New creates a bus. noticeDelay <= 0 falls back to DefaultNoticeDelay.
func New(logger *slog.Logger, noticeDelay time.Duration) *Bus {
	if noticeDelay <= 0 {
		noticeDelay = DefaultNoticeDelay
	}
	return &Bus{
		subscribers: make(map[string]*Subscriber),
		logger:      logger,
		noticeDelay: noticeDelay,
	}
}

// Subscribe registers a new consumer and returns it. The caller must
// Unsubscribe when done.
func (b *Bus) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID:        id.MustGenerate("sub"),
		EventChan: make(chan Event, 100), // Buffer 100 events per subscriber
	}

	b.mu.Lock()
	b.subscribers[sub.ID] = sub
	b.mu.Unlock()

	return sub
}

// Unsubscribe removes a consumer and closes its channel.
func (b *Bus) Unsubscribe(subID string) {
	b.mu.Lock()
	sub, ok := b.subscribers[subID]
	if !ok {
		b.mu.Unlock()
		return
	}
	delete(b.subscribers, subID)
	b.mu.Unlock()

	close(sub.EventChan)
}

// Publish delivers an event to every subscriber without blocking.
func (b *Bus) Publish(event Event) {
	b.closedMu.RLock()
	defer b.closedMu.RUnlock()
	if b.closed {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		select {
		case sub.EventChan <- event:
		default:
			if b.logger != nil {
				b.logger.Warn("dropped event for slow subscriber",
					slog.String("subscriber_id", sub.ID),
					slog.String("kind", string(event.Kind)))
			}
		}
	}
}

// Emit implements store.EventEmitter: storage changes arriving from the
// store are wrapped into bus events. Unknown payloads are dropped.
func (b *Bus) Emit(event any) {
	change, ok := event.(store.StorageChanged)
	if !ok {
		if b.logger != nil {
			b.logger.Error("invalid event type emitted", slog.Any("event", event))
		}
		return
	}
	b.Publish(Event{
		Kind:   KindStorageChanged,
		Key:    change.Key,
		Origin: change.Origin,
	})
}

// Notify publishes a transient notice and schedules its auto-dismissal.
// Returns the notice for callers that want to correlate the clear event.
func (b *Bus) Notify(level Level, message string) *Notice {
	notice := &Notice{
		ID:      id.MustGenerate("notice"),
		Level:   level,
		Message: message,
	}
	b.Publish(Event{Kind: KindNotice, Notice: notice})

	time.AfterFunc(b.noticeDelay, func() {
		b.Publish(Event{Kind: KindNoticeCleared, Notice: notice})
	})

	return notice
}

// Close stops delivery and closes every subscriber channel.
func (b *Bus) Close() {
	b.closedMu.Lock()
	b.closed = true
	b.closedMu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subscribers {
		close(sub.EventChan)
	}
	b.subscribers = make(map[string]*Subscriber)
}
