package commands

import (
	"context"
	"log/slog"

	"stay-calendar/internal/domain/property"
	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/pkg/clock"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/queries"
	"stay-calendar/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrPropertyForbidden = errs.Mark(errs.New("only hosts may list properties"), errs.ErrForbidden)

type AddPropertyInput struct {
	// HostID is honoured for admins only; everyone else lists for themselves.
	HostID          *uuid.UUID
	Title           string
	Location        string
	WeekdayPrice    int64
	WeekendPrice    int64
	ExtraGuestPrice int64
	BaseGuests      int
	MaxGuests       int
	Currency        string
}

type PropertyCommands interface {
	AddProperty(ctx context.Context, actor user.Actor, in AddPropertyInput) (*queries.PropertyView, error)
}

type propertyCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPropertyCommands(uow shared.UnitOfWork, clk clock.Clock) PropertyCommands {
	return &propertyCommandsImpl{uow: uow, clock: clk}
}

// AddProperty creates the property together with its empty calendar.
func (c *propertyCommandsImpl) AddProperty(ctx context.Context, actor user.Actor, in AddPropertyInput) (*queries.PropertyView, error) {
	hostID := actor.ID
	switch actor.Role {
	case user.RoleAdmin:
		if in.HostID != nil {
			hostID = *in.HostID
		}
	case user.RoleHost, user.RoleAgent:
	default:
		return nil, ErrPropertyForbidden
	}

	p, err := property.NewProperty(property.NewPropertyParams{
		HostID:          hostID,
		Title:           in.Title,
		Location:        in.Location,
		WeekdayPrice:    in.WeekdayPrice,
		WeekendPrice:    in.WeekendPrice,
		ExtraGuestPrice: in.ExtraGuestPrice,
		BaseGuests:      in.BaseGuests,
		MaxGuests:       in.MaxGuests,
		Currency:        in.Currency,
	}, c.clock.Now())
	if err != nil {
		return nil, errs.Validation(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Properties().Create(ctx, p); err != nil {
			return err
		}
		_, err := tx.Calendars().Create(ctx, p.ID())
		return err
	})
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}

	slog.Info("property added",
		"property_id", p.ID().String(),
		"host_id", hostID.String(),
		"location", p.Location())

	view := queries.ToPropertyView(p)
	return &view, nil
}
