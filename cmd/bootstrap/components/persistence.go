package components

import (
	"stay-calendar/internal/infra/db"
	"stay-calendar/internal/infra/memstore"
	"stay-calendar/internal/infra/readstore"
	"stay-calendar/internal/infra/uow"
	"stay-calendar/internal/pkg/config"
	"stay-calendar/internal/usecase/queries"
	"stay-calendar/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PostgresPersistenceModule = fx.Module("persistence/postgres",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewPropertyReadStore,
			fx.As(new(queries.PropertyReadStore)),
		),
		fx.Annotate(
			readstore.NewCalendarReadStore,
			fx.As(new(queries.CalendarReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

var MemoryPersistenceModule = fx.Module("persistence/memory",
	fx.Provide(
		NewMemStore,
		fx.Annotate(
			memstore.NewUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			memstore.NewPropertyReadStore,
			fx.As(new(queries.PropertyReadStore)),
		),
		fx.Annotate(
			memstore.NewCalendarReadStore,
			fx.As(new(queries.CalendarReadStore)),
		),
		fx.Annotate(
			memstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewMemStore(cfg config.Config) *memstore.Store {
	return memstore.New(cfg.Store)
}
