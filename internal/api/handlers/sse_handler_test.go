package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/voicebyte/internal/api/handlers"
	"github.com/zatekoja/voicebyte/internal/domain/entities"
	"github.com/zatekoja/voicebyte/internal/domain/providers"
)

// MockEventBus for testing
type MockEventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan *entities.QueueEvent
	published   []*entities.QueueEvent
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscribers: make(map[string][]chan *entities.QueueEvent),
	}
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.QueueEvent) error {
	m.mu.Lock()
	m.published = append(m.published, event)
	channels := append([]chan *entities.QueueEvent(nil), m.subscribers[channel]...)
	m.mu.Unlock()

	for _, ch := range channels {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.QueueEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *entities.QueueEvent, 10)
	m.subscribers[channel] = append(m.subscribers[channel], ch)
	return ch, nil
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscribers, channel)
	return nil
}

func (m *MockEventBus) Close() error {
	m.mu.Lock()
	subs := m.subscribers
	m.subscribers = make(map[string][]chan *entities.QueueEvent)
	m.mu.Unlock()
	for _, channels := range subs {
		for _, ch := range channels {
			close(ch)
		}
	}
	return nil
}

func (m *MockEventBus) SubscriberCount(channel string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers[channel])
}

// streamFor runs the handler until cancel is called and returns the body.
func streamFor(t *testing.T, handler *handlers.SSEHandler, during func()) *httptest.ResponseRecorder {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/admin/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.StreamQueueUpdates(w, req)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	during()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after cancel")
	}
	return w
}

func TestSSEHandler_StreamQueueUpdates(t *testing.T) {
	t.Run("establishes the stream", func(t *testing.T) {
		handler := handlers.NewSSEHandler(NewMockEventBus())

		w := streamFor(t, handler, func() {})

		result := w.Result()
		assert.Equal(t, "text/event-stream", result.Header.Get("Content-Type"))
		assert.Equal(t, "no-cache", result.Header.Get("Cache-Control"))
		assert.Contains(t, w.Body.String(), "event: connected\n")
	})

	t.Run("forwards queue events", func(t *testing.T) {
		bus := NewMockEventBus()
		handler := handlers.NewSSEHandler(bus)

		w := streamFor(t, handler, func() {
			require.Equal(t, 1, bus.SubscriberCount(providers.EventChannelQueueUpdates))
			require.NoError(t, bus.Publish(context.Background(), providers.EventChannelQueueUpdates, &entities.QueueEvent{
				ID:          "evt-1",
				Type:        entities.QueueEventCalled,
				PatientID:   7,
				TokenNumber: 3,
				Department:  "Cardiology",
			}))
			time.Sleep(200 * time.Millisecond)
		})

		body := w.Body.String()
		assert.Contains(t, body, "event: patient_called\n")
		assert.Contains(t, body, `"token_number":3`)
		assert.True(t, strings.Index(body, "event: connected") < strings.Index(body, "event: patient_called"))
	})

	t.Run("unavailable without an event bus", func(t *testing.T) {
		handler := handlers.NewSSEHandler(nil)
		w := httptest.NewRecorder()

		handler.StreamQueueUpdates(w, httptest.NewRequest(http.MethodGet, "/admin/events", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestSSEHandler_ClientCount(t *testing.T) {
	handler := handlers.NewSSEHandler(NewMockEventBus())
	assert.Equal(t, 0, handler.GetClientCount())

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/admin/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.StreamQueueUpdates(w, req)
		close(done)
	}()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, handler.GetClientCount())

	cancel()
	<-done
	assert.Equal(t, 0, handler.GetClientCount())
}
