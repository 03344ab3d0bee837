package calendar

import (
	"sort"

	"github.com/google/uuid"
)

// Calendar is the per-property map of day overrides. It is always read and
// written as one document; Version increases by one on every stored write.
type Calendar struct {
	propertyID uuid.UUID
	days       map[Date]DaySettings
	version    int64
}

func NewCalendar(propertyID uuid.UUID) *Calendar {
	return &Calendar{
		propertyID: propertyID,
		days:       make(map[Date]DaySettings),
	}
}

func ReconstructCalendar(propertyID uuid.UUID, days map[Date]DaySettings, version int64) *Calendar {
	c := &Calendar{
		propertyID: propertyID,
		days:       make(map[Date]DaySettings, len(days)),
		version:    version,
	}
	for d, s := range days {
		c.days[d] = s.Clone()
	}
	return c
}

func (c *Calendar) PropertyID() uuid.UUID { return c.propertyID }
func (c *Calendar) Version() int64        { return c.version }
func (c *Calendar) Len() int              { return len(c.days) }

// Day returns the settings for d, or the implicit available day.
func (c *Calendar) Day(d Date) DaySettings {
	if s, ok := c.days[d]; ok {
		return s.Clone()
	}
	return AvailableDay()
}

func (c *Calendar) HasEntry(d Date) bool {
	_, ok := c.days[d]
	return ok
}

// Days returns a copy of the stored overrides.
func (c *Calendar) Days() map[Date]DaySettings {
	out := make(map[Date]DaySettings, len(c.days))
	for d, s := range c.days {
		out[d] = s.Clone()
	}
	return out
}

// SortedDates lists stored dates ascending.
func (c *Calendar) SortedDates() []Date {
	dates := make([]Date, 0, len(c.days))
	for d := range c.days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Window returns the stored overrides that fall inside r.
func (c *Calendar) Window(r DateRange) map[Date]DaySettings {
	out := make(map[Date]DaySettings)
	for d, s := range c.days {
		if r.Contains(d) {
			out[d] = s.Clone()
		}
	}
	return out
}

// DatesBookedBy lists the days that carry bookingID as their reference.
func (c *Calendar) DatesBookedBy(bookingID uuid.UUID) []Date {
	var dates []Date
	for d, s := range c.days {
		if s.BookedBy(bookingID) {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// EffectivePrice is the override when present, else the weekend or weekday
// base rate.
func (c *Calendar) EffectivePrice(d Date, weekdayPrice, weekendPrice int64) (int64, PriceSource) {
	if s, ok := c.days[d]; ok && s.Price != nil {
		return *s.Price, PriceSourceOverride
	}
	if d.IsWeekend() {
		return weekendPrice, PriceSourceWeekend
	}
	return weekdayPrice, PriceSourceWeekday
}

type PriceSource string

const (
	PriceSourceOverride PriceSource = "override"
	PriceSourceWeekday  PriceSource = "weekday"
	PriceSourceWeekend  PriceSource = "weekend"
)

// PruneBefore drops overrides dated strictly before cutoff, except booked
// days, which must stay resolvable to their booking.
func (c *Calendar) PruneBefore(cutoff Date) (*Calendar, int) {
	next := ReconstructCalendar(c.propertyID, c.days, c.version)
	removed := 0
	for d, s := range next.days {
		if d.Before(cutoff) && !s.IsBooked() {
			delete(next.days, d)
			removed++
		}
	}
	return next, removed
}

// WithVersion returns a copy stamped with the given version.
func (c *Calendar) WithVersion(version int64) *Calendar {
	next := ReconstructCalendar(c.propertyID, c.days, version)
	return next
}
