package notify

import (
	"log/slog"
	"sync"
)

// Event is the envelope pushed to subscribers.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// Conn is a live client connection able to receive events.
type Conn interface {
	ID() string
	Send(Event) error
}

// Sink receives a copy of every published event.
type Sink interface {
	Mirror(userID int64, e Event)
}

// Hub routes events to connections joined to a user room. Delivery is
// at-most-once: an event for a user with no connection is dropped.
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[string]Conn
	joins map[string]map[int64]struct{}

	sink   Sink
	logger *slog.Logger
}

// NewHub constructs an empty hub. sink may be nil.
func NewHub(sink Sink, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:  make(map[int64]map[string]Conn),
		joins:  make(map[string]map[int64]struct{}),
		sink:   sink,
		logger: logger,
	}
}

// Subscribe joins conn to the room of userID. A connection may hold several
// rooms; joining the same room twice is a no-op.
func (h *Hub) Subscribe(conn Conn, userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := conn.ID()
	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[string]Conn)
		h.rooms[userID] = room
	}
	room[id] = conn

	joined, ok := h.joins[id]
	if !ok {
		joined = make(map[int64]struct{})
		h.joins[id] = joined
	}
	joined[userID] = struct{}{}
}

// Unsubscribe removes every registration of conn.
func (h *Hub) Unsubscribe(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := conn.ID()
	for userID := range h.joins[id] {
		room := h.rooms[userID]
		delete(room, id)
		if len(room) == 0 {
			delete(h.rooms, userID)
		}
	}
	delete(h.joins, id)
}

// Rooms returns how many rooms conn is joined to.
func (h *Hub) Rooms(conn Conn) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.joins[conn.ID()])
}

// Publish sends event to every connection of userID. Send failures are
// logged and otherwise ignored.
func (h *Hub) Publish(userID int64, event string, payload any) {
	e := Event{Name: event, Payload: payload}

	h.mu.RLock()
	targets := make([]Conn, 0, len(h.rooms[userID]))
	for _, conn := range h.rooms[userID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.Send(e); err != nil {
			h.logger.Warn("notification dropped",
				slog.Int64("user_id", userID),
				slog.String("event", event),
				slog.String("conn_id", conn.ID()),
				slog.String("error", err.Error()),
			)
		}
	}

	if h.sink != nil {
		h.sink.Mirror(userID, e)
	}
}

// Connections returns how many connections are joined to userID.
func (h *Hub) Connections(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
