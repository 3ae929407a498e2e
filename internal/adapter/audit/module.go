package audit

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodcourt/internal/config"
	"github.com/polkiloo/foodcourt/internal/notify"
)

// Module exposes the AMQP audit mirror as the hub sink. The sink is nil when
// no broker is configured.
var Module = fx.Provide(newSink)

type sinkParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newSink(p sinkParams) (notify.Sink, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("audit mirror disabled")
		return nil, nil
	}
	publisher, err := NewPublisher(p.Config.AMQPURL, p.Config.AMQPExchange, defaultBuffer, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
