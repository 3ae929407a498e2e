package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/polkiloo/foodcourt/internal/server/http/middleware"
)

// Handler upgrades authenticated requests to websocket connections and
// keeps track of them until they disconnect.
type Handler struct {
	hub        Subscriber
	upgrader   websocket.Upgrader
	sendBuffer int
	logger     *slog.Logger

	mu      sync.Mutex
	clients map[string]*client
	closed  bool
	pumps   sync.WaitGroup
}

// NewHandler constructs Handler. sendBuffer bounds the per-connection queue.
func NewHandler(hub Subscriber, sendBuffer int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if sendBuffer <= 0 {
		sendBuffer = 1
	}
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,
		logger:     logger,
		clients:    make(map[string]*client),
	}
}

// Serve handles GET /ws. Must run after middleware.AuthRequired.
func (h *Handler) Serve(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if h.isClosed() {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	cl := newClient(conn, caller, h.sendBuffer, h.logger)
	if !h.track(cl) {
		cl.shutdown()
		return
	}
	h.logger.Info("websocket connected", slog.String("conn_id", cl.id), slog.Int64("user_id", caller.UserID))

	go func() {
		defer h.pumps.Done()
		cl.writePump()
	}()
	go func() {
		defer h.pumps.Done()
		defer h.untrack(cl)
		cl.readPump(h.hub)
	}()
}

// Live returns the number of connected clients.
func (h *Handler) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client, refuses further upgrades and waits for
// the connection pumps to exit or ctx to end.
func (h *Handler) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		cl.shutdown()
	}

	done := make(chan struct{})
	go func() {
		h.pumps.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handler) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// track registers cl and reserves both pumps. The pump counter only grows
// while the handler is open, so Close never races a late Add.
func (h *Handler) track(cl *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[cl.id] = cl
	h.pumps.Add(2)
	return true
}

func (h *Handler) untrack(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl.id)
	h.mu.Unlock()
	h.logger.Info("websocket disconnected", slog.String("conn_id", cl.id))
}
