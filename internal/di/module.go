package di

import (
	"go.uber.org/fx"

	"github.com/omarsel/flashmart/internal/app"
	"github.com/omarsel/flashmart/internal/config"
	"github.com/omarsel/flashmart/internal/logger"
	"github.com/omarsel/flashmart/internal/pkg/auth"
	"github.com/omarsel/flashmart/internal/pkg/ratelimit"
	"github.com/omarsel/flashmart/internal/server/http/handlers"
	"github.com/omarsel/flashmart/internal/server/http/router"
	"github.com/omarsel/flashmart/internal/storage/postgres"
	"github.com/omarsel/flashmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		ratelimit.Module,
		usecase.Module,
		fx.Provide(
			func(l *ratelimit.CheckoutLimiter) usecase.SubmissionLimiter { return l },
			func(f *app.StoreFacade) handlers.StoreFacade { return f },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
