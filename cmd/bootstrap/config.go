package bootstrap

import (
	"stay-calendar/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies an already loaded config; the storage driver has to
// be known before the graph is assembled.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
