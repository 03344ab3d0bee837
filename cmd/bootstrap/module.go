package bootstrap

import (
	"stay-calendar/cmd/bootstrap/components"
	"stay-calendar/internal/pkg/config"

	"go.uber.org/fx"
)

func Module(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		JWTModule,
		persistence(cfg.Store.Driver),
		components.UseCaseModule,
		components.HandlerModule,
	)
}

func persistence(driver string) fx.Option {
	if driver == config.StoreDriverMemory {
		return components.MemoryPersistenceModule
	}
	return fx.Options(DBModule, components.PostgresPersistenceModule)
}
