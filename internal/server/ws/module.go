package ws

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodcourt/internal/config"
	"github.com/polkiloo/foodcourt/internal/notify"
)

// Module provides the websocket endpoint bound to the notification hub and
// disconnects its clients on stop.
var Module = fx.Options(
	fx.Provide(newHandler),
	fx.Invoke(registerLifecycle),
)

type handlerParams struct {
	fx.In

	Hub    *notify.Hub
	Config *config.Config
	Logger *slog.Logger
}

func newHandler(p handlerParams) *Handler {
	return NewHandler(p.Hub, p.Config.WSSendBuffer, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, h *Handler, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			live := h.Live()
			if err := h.Close(ctx); err != nil {
				return err
			}
			logger.Info("websocket clients closed", slog.Int("count", live))
			return nil
		},
	})
}
