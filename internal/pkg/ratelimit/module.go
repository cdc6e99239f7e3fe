package ratelimit

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/omarsel/flashmart/internal/config"
)

// Module wires the checkout limiter and stops its cleanup loop on shutdown.
var Module = fx.Options(
	fx.Provide(newCheckoutLimiter),
	fx.Invoke(registerLifecycle),
)

type limiterParams struct {
	fx.In

	Config *config.Config
}

func newCheckoutLimiter(p limiterParams) *CheckoutLimiter {
	return NewCheckoutLimiter(p.Config.CheckoutInterval, 5*time.Minute)
}

func registerLifecycle(lc fx.Lifecycle, limiter *CheckoutLimiter) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			limiter.Stop()
			return nil
		},
	})
}
