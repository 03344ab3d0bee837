package components

import (
	"stay-calendar/internal/domain/pricing"
	"stay-calendar/internal/pkg/clock"
	"stay-calendar/internal/pkg/config"
	"stay-calendar/internal/usecase"
	"stay-calendar/internal/usecase/commands"
	"stay-calendar/internal/usecase/queries"
	"stay-calendar/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPriceCalculator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		commands.NewCalendarCommands,
		commands.NewPropertyCommands,
		fx.Annotate(
			commands.NewDispatcher,
			fx.As(new(commands.ActionDispatcher)),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPropertyQueries,
		queries.NewCalendarQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPriceCalculator(cfg config.Config) (*pricing.Calculator, error) {
	rounding, err := pricing.ParseRounding(cfg.Pricing.Rounding)
	if err != nil {
		return nil, err
	}
	return &pricing.Calculator{
		ServiceFeeBps: cfg.Pricing.ServiceFeeBps,
		TaxBps:        cfg.Pricing.TaxBps,
		Rounding:      rounding,
	}, nil
}

func NewBookingCommands(uow shared.UnitOfWork, calc *pricing.Calculator, clk clock.Clock, cfg config.Config) commands.BookingCommands {
	return commands.NewBookingCommands(uow, calc, clk, cfg.Booking.RequireHostApproval)
}
