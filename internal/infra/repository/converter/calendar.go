package converter

import (
	"encoding/json"

	"stay-calendar/internal/domain/calendar"

	"github.com/google/uuid"
)

// EncodeCalendarDays renders the day map as the JSONB document stored in
// calendars.days, keyed by YYYY-MM-DD.
func EncodeCalendarDays(cal *calendar.Calendar) ([]byte, error) {
	return json.Marshal(cal.Days())
}

func DecodeCalendar(propertyID uuid.UUID, raw []byte, version int64) (*calendar.Calendar, error) {
	days := make(map[calendar.Date]calendar.DaySettings)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &days); err != nil {
			return nil, err
		}
	}
	return calendar.ReconstructCalendar(propertyID, days, version), nil
}
