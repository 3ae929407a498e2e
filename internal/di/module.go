package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/foodcourt/internal/adapter/audit"
	"github.com/polkiloo/foodcourt/internal/app"
	"github.com/polkiloo/foodcourt/internal/config"
	"github.com/polkiloo/foodcourt/internal/logger"
	"github.com/polkiloo/foodcourt/internal/notify"
	"github.com/polkiloo/foodcourt/internal/pkg/auth"
	"github.com/polkiloo/foodcourt/internal/server/http/router"
	"github.com/polkiloo/foodcourt/internal/server/ws"
	"github.com/polkiloo/foodcourt/internal/storage/postgres"
	"github.com/polkiloo/foodcourt/internal/tracing"
	"github.com/polkiloo/foodcourt/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		tracing.Module,
		auth.Module,
		postgres.Module,
		audit.Module,
		notify.Module,
		usecase.Module,
		ws.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
