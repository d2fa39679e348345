// Package viewerhub fans decoded messages out to connected viewers. The hub
// keeps a registry of subscriber channels; the websocket handler in ws.go
// bridges a subscription onto a browser connection. This is the
// "push-notification" collaborator of the wire codec: it consumes decoded
// messages keyed by type and contains no protocol logic.
package viewerhub

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/banshee-data/groundlink/internal/monitoring"
	"github.com/banshee-data/groundlink/internal/wire"
)

// subscriberBuffer is the per-subscriber queue depth. A viewer that falls
// further behind than this starts losing messages rather than stalling the
// decode pipeline.
const subscriberBuffer = 64

// Event is what subscribers receive: the message's type name alongside its
// decoded body, so viewers can route on type without re-parsing.
type Event struct {
	Type    string       `json:"type"`
	Message wire.Message `json:"message"`
}

// EncodeJSON renders the event for the websocket wire.
func (e Event) EncodeJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Hub is a subscriber registry for decoded message fan-out.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]chan Event
	closed      bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]chan Event)}
}

// Subscribe registers a new subscriber and returns its id and event channel.
// The id is used to unsubscribe.
func (h *Hub) Subscribe() (string, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish delivers a decoded message to every subscriber. A subscriber whose
// buffer is full has the message dropped; the drop is logged so slow viewers
// stay observable instead of backpressuring the decoder.
func (h *Hub) Publish(msg wire.Message) {
	event := Event{Type: msg.Header().Type.String(), Message: msg}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			monitoring.Logf("viewerhub: subscriber %s is behind, dropped %s", id, event.Type)
		}
	}
}

// SubscriberCount reports how many viewers are currently attached.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close closes every subscriber channel. Further Publish calls are no-ops
// and further Subscribe calls return an already-closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}
