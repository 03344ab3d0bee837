package calendar

import (
	"errors"
	"fmt"
	"sort"

	"stay-calendar/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyPatch       = errors.New("patch has no days")
	ErrEditCannotBook   = errors.New("only the booking ledger can mark days booked")
	ErrBookPatchShape   = errors.New("book patch must mark every day booked with its booking reference")
	ErrReleasePatchBook = errors.New("release patch cannot mark days booked")
)

type OriginKind string

const (
	OriginEdit    OriginKind = "edit"
	OriginBook    OriginKind = "book"
	OriginRelease OriginKind = "release"
)

// Origin says who produced a patch. Book and release carry the booking they act for.
type Origin struct {
	Kind      OriginKind
	BookingID uuid.UUID
}

func EditOrigin() Origin                  { return Origin{Kind: OriginEdit} }
func BookOrigin(id uuid.UUID) Origin      { return Origin{Kind: OriginBook, BookingID: id} }
func ReleaseOrigin(id uuid.UUID) Origin   { return Origin{Kind: OriginRelease, BookingID: id} }
func (o Origin) String() string           { return string(o.Kind) }
func (o Origin) IsBooking() bool          { return o.Kind == OriginBook || o.Kind == OriginRelease }
func (o Origin) ReleasesFor(id uuid.UUID) bool {
	return o.Kind == OriginRelease && o.BookingID == id
}

// Patch is a date-scoped set of full DaySettings replacements. Dates absent
// from the patch are left untouched when it is applied.
type Patch struct {
	Origin Origin
	Days   map[Date]DaySettings
}

func NewPatch(origin Origin) Patch {
	return Patch{Origin: origin, Days: make(map[Date]DaySettings)}
}

func (p Patch) Set(d Date, s DaySettings) {
	p.Days[d] = s
}

func (p Patch) Len() int { return len(p.Days) }

func (p Patch) SortedDates() []Date {
	dates := make([]Date, 0, len(p.Days))
	for d := range p.Days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Validate checks the patch shape against its origin without looking at
// the current calendar.
func (p Patch) Validate() error {
	if len(p.Days) == 0 {
		return ErrEmptyPatch
	}
	for _, d := range p.SortedDates() {
		s := p.Days[d]
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
		switch p.Origin.Kind {
		case OriginEdit:
			if s.IsBooked() {
				return fmt.Errorf("%s: %w", d, ErrEditCannotBook)
			}
		case OriginBook:
			if !s.BookedBy(p.Origin.BookingID) {
				return fmt.Errorf("%s: %w", d, ErrBookPatchShape)
			}
		case OriginRelease:
			if s.IsBooked() {
				return fmt.Errorf("%s: %w", d, ErrReleasePatchBook)
			}
		default:
			return fmt.Errorf("unknown patch origin %q", p.Origin.Kind)
		}
	}
	return nil
}

// Conflicts re-evaluates the patch against the calendar as it is now and
// lists the dates the patch is not allowed to touch.
func (c *Calendar) Conflicts(p Patch) []Date {
	var out []Date
	for _, d := range p.SortedDates() {
		current := c.Day(d)
		switch current.Status {
		case StatusBooked:
			if current.BookingRef != nil && p.Origin.ReleasesFor(*current.BookingRef) {
				continue
			}
			out = append(out, d)
		case StatusBlocked:
			if p.Origin.Kind == OriginBook {
				out = append(out, d)
			}
		case StatusAvailable:
		}
	}
	return out
}

// Apply merges p into a copy of the calendar and bumps the version. The
// receiver is not modified. Days that end up carrying nothing but the
// implicit default are dropped from the document.
func (c *Calendar) Apply(p Patch) (*Calendar, error) {
	if err := p.Validate(); err != nil {
		return nil, errs.Validation(err)
	}
	if conflicts := c.Conflicts(p); len(conflicts) > 0 {
		return nil, errs.NewConflictError(conflicts)
	}

	next := ReconstructCalendar(c.propertyID, c.days, c.version+1)
	for d, s := range p.Days {
		if s.IsDefault() {
			delete(next.days, d)
			continue
		}
		next.days[d] = s.Clone()
	}
	return next, nil
}

// BookingPatch marks every night of r booked for bookingID. Host-owned
// price, minimum stay and note are carried over; no price is invented.
func BookingPatch(cal *Calendar, r DateRange, bookingID uuid.UUID, guestName string) Patch {
	p := NewPatch(BookOrigin(bookingID))
	for _, d := range r.Dates() {
		s := cal.Day(d)
		s.Status = StatusBooked
		name := guestName
		ref := bookingID
		s.GuestName = &name
		s.BookingRef = &ref
		p.Set(d, s)
	}
	return p
}

// ReleasePatch returns every day carrying bookingID to available, keeping
// host-owned fields.
func ReleasePatch(cal *Calendar, bookingID uuid.UUID) Patch {
	p := NewPatch(ReleaseOrigin(bookingID))
	for _, d := range cal.DatesBookedBy(bookingID) {
		s := cal.Day(d)
		s.Status = StatusAvailable
		s.GuestName = nil
		s.BookingRef = nil
		p.Set(d, s)
	}
	return p
}
