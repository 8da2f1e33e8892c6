// Package dispatch delivers native player events to application listeners.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/trackbind/internal/domain/event"
)

// DefaultTimeout bounds how long a single listener may block a dispatch.
const DefaultTimeout = 500 * time.Millisecond

// ErrUnknownEvent is returned when subscribing to an event that does not exist.
var ErrUnknownEvent = errors.New("cannot listen to unknown event")

// Handler receives event messages.
type Handler func(ctx context.Context, msg event.Message)

// subscription is a listener registered for one event.
type subscription struct {
	id      string
	event   event.Event
	handler Handler
}

// Manager keeps listeners per event and fans messages out to them.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	timeout       time.Duration
}

// NewManager creates a new dispatch manager. A zero timeout uses DefaultTimeout.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		subscriptions: make(map[string]*subscription),
		timeout:       timeout,
	}
}

// Subscribe registers handler for ev and returns the subscription ID.
func (m *Manager) Subscribe(ev event.Event, handler Handler) (string, error) {
	if !ev.Valid() {
		return "", errors.Wrapf(ErrUnknownEvent, "%q", ev)
	}
	if handler == nil {
		return "", errors.New("handler is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions[id] = &subscription{
		id:      id,
		event:   ev,
		handler: handler,
	}
	return id, nil
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscriptions, subscriptionID)
}

// Dispatch delivers msg to every listener of msg.Type in parallel and waits
// until each one returns, panics or times out. It returns the number of
// listeners that returned normally in time. A listener that timed out keeps
// running and may overlap its next delivery.
func (m *Manager) Dispatch(ctx context.Context, msg event.Message) int {
	m.mu.RLock()
	// Copy to avoid holding the lock during delivery
	subs := make([]*subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		if sub.event == msg.Type {
			subs = append(subs, sub)
		}
	}
	m.mu.RUnlock()

	var (
		wg        sync.WaitGroup
		delivered int
		countMu   sync.Mutex
	)
	for _, sub := range subs {
		wg.Add(1)
		go func(s *subscription) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(ctx, m.timeout)
			defer cancel()

			// Receives true when the handler returns, false when it panics.
			done := make(chan bool, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						zlog.Error().Str("event", string(msg.Type)).Str("subscription", s.id).
							Msgf("Listener panicked: %v", r)
						done <- false
					}
				}()
				s.handler(ctx, msg)
				done <- true
			}()

			select {
			case ok := <-done:
				if ok {
					countMu.Lock()
					delivered++
					countMu.Unlock()
				}
			case <-ctx.Done():
				zlog.Warn().Str("event", string(msg.Type)).Str("subscription", s.id).
					Msg("Listener did not return before timeout")
			}
		}(sub)
	}

	wg.Wait()
	return delivered
}

// ListenerCount returns the number of listeners for ev.
func (m *Manager) ListenerCount(ev event.Event) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, sub := range m.subscriptions {
		if sub.event == ev {
			n++
		}
	}
	return n
}

// Close removes all subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = make(map[string]*subscription)
}
