package ws

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/notify"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	msgJoinRoom = "join_room"
	eventError  = "error"
)

var (
	// ErrBufferFull reports a client that does not drain its events fast enough.
	ErrBufferFull = errors.New("websocket send buffer full")
	// ErrClientClosed reports a send to a disconnected client.
	ErrClientClosed = errors.New("websocket client closed")
)

// Subscriber joins connections to user rooms.
type Subscriber interface {
	Subscribe(conn notify.Conn, userID int64)
	Unsubscribe(conn notify.Conn)
}

type inbound struct {
	Type   string `json:"type"`
	UserID int64  `json:"userId"`
}

// client is one websocket connection. It implements notify.Conn.
type client struct {
	id     string
	conn   *websocket.Conn
	caller model.Caller
	send   chan notify.Event
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func newClient(conn *websocket.Conn, caller model.Caller, buffer int, logger *slog.Logger) *client {
	return &client{
		id:     uuid.NewString(),
		conn:   conn,
		caller: caller,
		send:   make(chan notify.Event, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

func (c *client) ID() string { return c.id }

// Send queues e without blocking.
func (c *client) Send(e notify.Event) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}
	select {
	case c.send <- e:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrBufferFull
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// shutdown tells the peer the server is going away and closes the socket.
func (c *client) shutdown() {
	if c.conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	}
	c.close()
}

// mayJoin reports whether the caller may receive events of userID.
func (c *client) mayJoin(userID int64) bool {
	return userID == c.caller.UserID || c.caller.Role == model.RoleAdmin
}

func (c *client) readPump(hub Subscriber) {
	defer func() {
		hub.Unsubscribe(c)
		c.close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inbound
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", slog.String("conn_id", c.id), slog.String("error", err.Error()))
			}
			return
		}

		switch msg.Type {
		case msgJoinRoom:
			if !c.mayJoin(msg.UserID) {
				_ = c.Send(notify.Event{Name: eventError, Payload: map[string]string{"message": "forbidden room"}})
				continue
			}
			hub.Subscribe(c, msg.UserID)
			c.logger.Debug("room joined", slog.String("conn_id", c.id), slog.Int64("user_id", msg.UserID))
		default:
			_ = c.Send(notify.Event{Name: eventError, Payload: map[string]string{"message": "unknown message type"}})
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case e := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(e); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
