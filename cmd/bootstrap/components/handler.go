package components

import (
	"stay-calendar/internal/handler"
	"stay-calendar/internal/handler/api"
	"stay-calendar/internal/handler/middleware"
	"stay-calendar/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPropertyHandler,
		api.NewBookingHandler,
		api.NewActionHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}
