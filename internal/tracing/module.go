package tracing

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodcourt/internal/config"
)

// Module installs tracing before the HTTP server starts.
var Module = fx.Options(
	fx.Provide(newProvider),
	fx.Invoke(func(*Provider) {}),
)

type providerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newProvider(p providerParams) (*Provider, error) {
	provider, err := New(p.Config.JaegerEndpoint)
	if err != nil {
		return nil, err
	}
	provider.Install()
	if p.Config.JaegerEndpoint == "" {
		p.Logger.Info("trace export disabled")
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
