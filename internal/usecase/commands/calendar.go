package commands

import (
	"context"
	"log/slog"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/pkg/clock"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCalendarForbidden = errs.Mark(errs.New("actor may not edit this calendar"), errs.ErrForbidden)
	ErrPruneInFuture     = errs.Validation(errs.New("prune cutoff cannot be after today"))
)

type BulkEditInput struct {
	PropertyID uuid.UUID
	Range      calendar.DateRange
	Edit       calendar.BulkEdit
	Filter     calendar.DayFilter
}

type BulkEditResult struct {
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped"`
	Version int64    `json:"version"`
}

type PruneResult struct {
	Removed int   `json:"removed"`
	Version int64 `json:"version"`
}

type CalendarCommands interface {
	ApplyBulkEdit(ctx context.Context, actor user.Actor, in BulkEditInput) (*BulkEditResult, error)
	PruneBefore(ctx context.Context, actor user.Actor, propertyID uuid.UUID, cutoff calendar.Date) (*PruneResult, error)
}

type calendarCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCalendarCommands(uow shared.UnitOfWork, clk clock.Clock) CalendarCommands {
	return &calendarCommandsImpl{uow: uow, clock: clk}
}

// ApplyBulkEdit merges edit into every selected day that is not booked.
// Booked days are reported as skipped and left untouched.
func (c *calendarCommandsImpl) ApplyBulkEdit(ctx context.Context, actor user.Actor, in BulkEditInput) (*BulkEditResult, error) {
	var result BulkEditResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Properties().FindByID(ctx, in.PropertyID)
		if err != nil {
			return err
		}
		if !actor.CanManage(p.HostID()) {
			return ErrCalendarForbidden
		}

		cal, err := tx.Calendars().Get(ctx, p.ID())
		if err != nil {
			return err
		}
		bulk, err := calendar.BuildBulkPatch(cal, in.Range, in.Edit, in.Filter)
		if err != nil {
			return errs.Validation(err)
		}

		result = BulkEditResult{
			Updated: datesToStrings(bulk.Updated),
			Skipped: datesToStrings(bulk.Skipped),
			Version: cal.Version(),
		}
		if bulk.Patch.Len() == 0 {
			return nil
		}

		next, err := tx.Calendars().Apply(ctx, p.ID(), cal.Version(), bulk.Patch)
		if err != nil {
			return err
		}
		result.Version = next.Version()
		return nil
	})
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}

	slog.Info("calendar bulk edit applied",
		"property_id", in.PropertyID.String(),
		"actor_id", actor.ID.String(),
		"range", in.Range.String(),
		"filter", string(in.Filter),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"version", result.Version)
	return &result, nil
}

func (c *calendarCommandsImpl) PruneBefore(ctx context.Context, actor user.Actor, propertyID uuid.UUID, cutoff calendar.Date) (*PruneResult, error) {
	if cutoff.After(calendar.DateOf(c.clock.Now())) {
		return nil, ErrPruneInFuture
	}

	var result PruneResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Properties().FindByID(ctx, propertyID)
		if err != nil {
			return err
		}
		if !actor.CanManage(p.HostID()) {
			return ErrCalendarForbidden
		}

		cal, removed, err := tx.Calendars().PruneBefore(ctx, propertyID, cutoff)
		if err != nil {
			return err
		}
		result = PruneResult{Removed: removed, Version: cal.Version()}
		return nil
	})
	if err != nil {
		return nil, shared.TranslateStoreErr(err)
	}

	slog.Info("calendar pruned",
		"property_id", propertyID.String(),
		"cutoff", cutoff.String(),
		"removed", result.Removed)
	return &result, nil
}

func datesToStrings(dates []calendar.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}
