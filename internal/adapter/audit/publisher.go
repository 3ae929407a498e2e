package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/polkiloo/foodcourt/internal/notify"
)

const (
	exchangeKind  = "fanout"
	defaultBuffer = 256
)

// ErrPublisherClosed is returned by Close when called twice.
var ErrPublisherClosed = errors.New("audit publisher closed")

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dial opens the broker connection. Replaced in tests.
var dial = func(url string) (channel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, conn, nil
}

// record is the message body written to the exchange.
type record struct {
	UserID      int64     `json:"userId"`
	Event       string    `json:"event"`
	Payload     any       `json:"payload"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Publisher mirrors hub events to an AMQP fanout exchange for audit
// consumers. Publishing is fire-and-forget through a bounded queue.
type Publisher struct {
	ch       channel
	conn     io.Closer
	exchange string
	logger   *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan record
	done   chan struct{}
}

// NewPublisher connects to url, declares exchange and starts the sender loop.
func NewPublisher(url, exchange string, buffer int, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	ch, conn, err := dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := &Publisher{
		ch:       ch,
		conn:     conn,
		exchange: exchange,
		logger:   logger,
		queue:    make(chan record, buffer),
		done:     make(chan struct{}),
	}
	go p.run()
	logger.Info("audit mirror connected", slog.String("exchange", exchange))
	return p, nil
}

// Mirror enqueues e without blocking. The event is dropped when the queue
// is full or the publisher is closed.
func (p *Publisher) Mirror(userID int64, e notify.Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.queue <- record{UserID: userID, Event: e.Name, Payload: e.Payload, PublishedAt: time.Now().UTC()}:
	default:
		p.logger.Warn("audit mirror queue full, event dropped", slog.String("event", e.Name))
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for rec := range p.queue {
		body, err := json.Marshal(rec)
		if err != nil {
			p.logger.Warn("audit record encoding failed", slog.String("error", err.Error()))
			continue
		}
		err = p.ch.Publish(p.exchange, "", false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    rec.PublishedAt,
			Type:         rec.Event,
			Body:         body,
		})
		if err != nil {
			p.logger.Warn("audit publish failed", slog.String("event", rec.Event), slog.String("error", err.Error()))
		}
	}
}

// Close drains queued records and closes the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPublisherClosed
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return errors.Join(p.ch.Close(), p.conn.Close())
}
