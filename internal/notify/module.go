package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodcourt/internal/usecase"
)

// Module provides the single notification hub and exposes it to use cases.
var Module = fx.Provide(
	newHub,
	func(h *Hub) usecase.Notifier { return h },
)

type hubParams struct {
	fx.In

	Sink   Sink `optional:"true"`
	Logger *slog.Logger
}

func newHub(p hubParams) *Hub {
	return NewHub(p.Sink, p.Logger)
}
