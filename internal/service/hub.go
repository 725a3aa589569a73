package service

import (
	"sync"

	"github.com/gorilla/websocket"

	"phishhook/internal/metrics"
	"phishhook/internal/model"
	"phishhook/internal/utils"
)

// Outbound buffer depth per subscriber. A client that falls this far behind
// is dropped rather than ever blocking the publish path.
const subscriberBuffer = 64

// Subscriber is one live websocket client attached to the hub. All writes to
// the connection go through a single writer goroutine, so delivery order per
// subscriber equals enqueue order.
type Subscriber struct {
	conn *websocket.Conn
	send chan model.Event
	done chan struct{}
	once sync.Once
}

func (s *Subscriber) close() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// enqueue offers an event to the subscriber without blocking. It reports
// false when the subscriber is gone or its buffer is full.
func (s *Subscriber) enqueue(ev model.Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- ev:
		return true
	default:
		return false
	}
}

// Hub fans every scan record out to the current subscriber set and replays
// the history snapshot to late joiners.
type Hub struct {
	mu      sync.Mutex
	subs    map[*Subscriber]struct{}
	history *History
}

func NewHub(history *History) *Hub {
	return &Hub{
		subs:    make(map[*Subscriber]struct{}),
		history: history,
	}
}

// Subscribe registers the connection and queues a history event from a fresh
// snapshot as the subscriber's first message. The snapshot and registration
// happen under the hub lock so no broadcast can slip in between them.
func (h *Hub) Subscribe(conn *websocket.Conn) *Subscriber {
	sub := &Subscriber{
		conn: conn,
		send: make(chan model.Event, subscriberBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	sub.send <- model.HistoryEvent(h.history.Snapshot())
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	metrics.WSSubscribers.Inc()
	go h.writeLoop(sub)
	return sub
}

// Unsubscribe removes the subscriber and closes its connection. Safe to call
// more than once and safe to race against an in-flight Publish.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, registered := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()

	if registered {
		metrics.WSSubscribers.Dec()
	}
	sub.close()
}

// Publish delivers a new-scan event to every current subscriber, best-effort.
// A subscriber that cannot accept the event is dropped; the remaining
// deliveries and the classification path are never held up.
func (h *Hub) Publish(r model.ScanRecord) {
	ev := model.NewScanEvent(r)

	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if !sub.enqueue(ev) {
			utils.Log.Warn("dropping unresponsive subscriber",
				utils.Field("remote", sub.conn.RemoteAddr().String()))
			h.Unsubscribe(sub)
		}
	}
	metrics.EventsPublished.Inc()
}

// SendTo queues a private event (scan-result, error) for one subscriber.
func (h *Hub) SendTo(sub *Subscriber, ev model.Event) {
	if !sub.enqueue(ev) {
		h.Unsubscribe(sub)
	}
}

// Count returns the number of live subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) writeLoop(sub *Subscriber) {
	for {
		select {
		case <-sub.done:
			return
		case ev := <-sub.send:
			if err := sub.conn.WriteJSON(ev); err != nil {
				utils.Log.Debug("subscriber write failed",
					utils.Field("error", err.Error()))
				h.Unsubscribe(sub)
				return
			}
		}
	}
}
