package shared

import (
	"context"
	"errors"

	"stay-calendar/internal/infra"
	"stay-calendar/internal/pkg/errs"
)

// TranslateStoreErr maps repository error kinds onto the error taxonomy the
// handlers understand. Errors that already carry a taxonomy mark pass through.
func TranslateStoreErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errs.Is(err, errs.ErrConflict),
		errs.Is(err, errs.ErrValidation),
		errs.Is(err, errs.ErrNotFound),
		errs.Is(err, errs.ErrForbidden),
		errs.Is(err, errs.ErrPayloadTooLarge),
		errs.Is(err, errs.ErrTransient):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindPayloadTooLarge):
		return errs.Mark(err, errs.ErrPayloadTooLarge)
	case infra.IsKind(err, infra.KindTransient),
		errors.Is(err, context.DeadlineExceeded):
		return errs.Mark(err, errs.ErrTransient)
	case infra.IsKind(err, infra.KindVersionConflict):
		return &errs.ConflictError{}
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrValidation)
	default:
		return err
	}
}
