//go:build e2e

package calendar_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/handler/dto/response"
	"stay-calendar/tests/common/authtest"
	"stay-calendar/tests/common/builder"
	"stay-calendar/tests/common/dbtest"
	"stay-calendar/tests/common/httptest"
	"stay-calendar/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	propertiesURL  = "/api/properties"
	calendarURL    = "/api/properties/%s/calendar"
	calendarICSURL = "/api/properties/%s/calendar.ics"
	actionsURL     = "/api/actions"
	bookingsURL    = "/api/bookings"
)

type CalendarSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *CalendarSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *CalendarSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCalendarSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CalendarSuite))
}

func (s *CalendarSuite) window(t *testing.T, propertyID uuid.UUID, from, to, token string) response.CalendarResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet,
		fmt.Sprintf(calendarURL, propertyID)+"?from="+from+"&to="+to, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cal response.CalendarResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cal))
	return cal
}

// =============================================================================
// TestAddProperty
// =============================================================================

func (s *CalendarSuite) TestAddProperty() {
	s.Run("Normal case: host lists a property with an empty calendar", func() {
		t := s.T()

		hostID, token := s.jwt.NewActorToken(t, user.RoleHost)
		req := builder.NewPropertyBuilder().BuildAddRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, propertiesURL, req, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.PropertyResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		assert.Equal(t, hostID, created.HostID)
		httptest.AssertHeaders(t, w, map[string]string{"Location": "/api/properties/" + created.ID.String()})

		monday := e2e.NextMonday(7)
		cal := s.window(t, created.ID, monday.String(), monday.AddDays(6).String(), "")
		require.Len(t, cal.Days, 7)
		assert.Equal(t, int64(0), cal.Version)
		for _, d := range cal.Days {
			assert.Equal(t, "available", d.Status)
		}
		assert.Equal(t, req.WeekdayPrice, cal.Days[0].Price)
		assert.Equal(t, req.WeekendPrice, cal.Days[4].Price, "Friday is a weekend night")
	})

	s.Run("Error case: guests cannot list properties", func() {
		t := s.T()

		_, token := s.jwt.NewActorToken(t, user.RoleGuest)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, propertiesURL, builder.NewPropertyBuilder().BuildAddRequestDTO(), token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}

// =============================================================================
// TestBulkEdit
// =============================================================================

func (s *CalendarSuite) TestBulkEdit() {
	s.Run("Normal case: weekend override, booked days are skipped", func() {
		t := s.T()

		hostID, hostToken := s.jwt.NewActorToken(t, user.RoleHost)
		propertyID := s.NewListing(hostID, "Seaside Cabin", 10000, 15000)
		_, guestToken := s.jwt.NewActorToken(t, user.RoleGuest)

		monday := e2e.NextMonday(30)
		friday, sunday := monday.AddDays(4), monday.AddDays(6)

		booking := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.PropertyID = propertyID
			b.CheckIn = friday.AddDays(1).String()
			b.CheckOut = sunday.AddDays(1).String()
		}).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, booking, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		edit := map[string]any{
			"startDate": monday.String(),
			"endDate":   sunday.String(),
			"applyTo":   "weekends",
			"price":     20000,
			"note":      "festival",
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(calendarURL, propertyID), edit, hostToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result response.BulkEditResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &result))
		assert.Equal(t, []string{friday.String()}, result.Updated)
		assert.Equal(t, []string{friday.AddDays(1).String(), sunday.String()}, result.Skipped)
		assert.Equal(t, int64(2), result.Version)

		hostView := s.window(t, propertyID, friday.String(), friday.String(), hostToken)
		require.Len(t, hostView.Days, 1)
		assert.Equal(t, int64(20000), hostView.Days[0].Price)
		assert.Equal(t, "override", hostView.Days[0].PriceSource)
		require.NotNil(t, hostView.Days[0].Note)
		assert.Equal(t, "festival", *hostView.Days[0].Note)

		publicView := s.window(t, propertyID, friday.String(), friday.String(), "")
		assert.Nil(t, publicView.Days[0].Note, "notes are host-only")
		assert.Equal(t, int64(20000), publicView.Days[0].Price)
	})

	s.Run("Error case: another host cannot edit", func() {
		t := s.T()

		propertyID := s.NewListing(uuid.New(), "Seaside Cabin", 10000, 15000)
		_, otherHost := s.jwt.NewActorToken(t, user.RoleHost)

		monday := e2e.NextMonday(30)
		edit := map[string]any{"startDate": monday.String(), "endDate": monday.String(), "status": "blocked"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(calendarURL, propertyID), edit, otherHost)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")
		assert.Equal(t, int64(0), dbtest.CalendarVersion(t, s.DB, propertyID))
	})

	s.Run("Error case: status booked cannot be set by hand", func() {
		t := s.T()

		hostID, token := s.jwt.NewActorToken(t, user.RoleHost)
		propertyID := s.NewListing(hostID, "Seaside Cabin", 10000, 15000)

		monday := e2e.NextMonday(30)
		edit := map[string]any{"startDate": monday.String(), "endDate": monday.String(), "status": "booked"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(calendarURL, propertyID), edit, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})
}

// =============================================================================
// TestActions
// =============================================================================

func (s *CalendarSuite) TestActions() {
	s.Run("Normal case: agent blocks dates, guests are then turned away", func() {
		t := s.T()

		hostID, hostToken := s.jwt.NewActorToken(t, user.RoleHost)
		propertyID := s.NewListing(hostID, "Seaside Cabin", 10000, 15000)
		_, guestToken := s.jwt.NewActorToken(t, user.RoleGuest)

		monday := e2e.NextMonday(30)
		action := map[string]any{
			"type": "BLOCK_DATES",
			"payload": map[string]any{
				"propertyId": propertyID.String(),
				"startDate":  monday.AddDays(1).String(),
				"endDate":    monday.AddDays(2).String(),
				"reason":     "maintenance",
			},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, actionsURL, action, hostToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res struct {
			Type   string                    `json:"type"`
			Result response.BulkEditResponse `json:"result"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		assert.Equal(t, "BLOCK_DATES", res.Type)
		assert.Equal(t, []string{monday.AddDays(1).String(), monday.AddDays(2).String()}, res.Result.Updated)

		booking := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.PropertyID = propertyID
			b.CheckIn = monday.String()
			b.CheckOut = monday.AddDays(4).String()
		}).BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, booking, guestToken)
		httptest.AssertConflictDates(t, w, []string{monday.AddDays(1).String(), monday.AddDays(2).String()})
	})

	s.Run("Error case: guests cannot dispatch actions", func() {
		t := s.T()

		_, token := s.jwt.NewActorToken(t, user.RoleGuest)
		action := map[string]any{"type": "CANCEL_BOOKING", "payload": map[string]any{"bookingId": uuid.NewString()}}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, actionsURL, action, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: unknown action type", func() {
		t := s.T()

		_, token := s.jwt.NewActorToken(t, user.RoleAgent)
		action := map[string]any{"type": "DELETE_PROPERTY", "payload": map[string]any{}}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, actionsURL, action, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "unknown action type")
	})
}

// =============================================================================
// TestExportAndSearch
// =============================================================================

func (s *CalendarSuite) TestExportAndSearch() {
	s.Run("Normal case: ics export lists blocked stretches", func() {
		t := s.T()

		hostID, token := s.jwt.NewActorToken(t, user.RoleHost)
		propertyID := s.NewListing(hostID, "Seaside Cabin", 10000, 15000)

		monday := e2e.NextMonday(30)
		edit := map[string]any{"startDate": monday.String(), "endDate": monday.AddDays(2).String(), "status": "blocked"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(calendarURL, propertyID), edit, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(calendarICSURL, propertyID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))

		body := w.Body.String()
		assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
		assert.Contains(t, body, "DTSTART;VALUE=DATE:"+strings.ReplaceAll(monday.String(), "-", ""))
		assert.Contains(t, body, "DTEND;VALUE=DATE:"+strings.ReplaceAll(monday.AddDays(3).String(), "-", ""))
		assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
	})

	s.Run("Normal case: search drops properties that are not free for the stay", func() {
		t := s.T()

		hostID, token := s.jwt.NewActorToken(t, user.RoleHost)
		free := s.NewListing(hostID, "Free Cabin", 10000, 15000)
		blocked := s.NewListing(hostID, "Blocked Cabin", 10000, 15000)

		monday := e2e.NextMonday(30)
		edit := map[string]any{"startDate": monday.AddDays(1).String(), "endDate": monday.AddDays(1).String(), "status": "blocked"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(calendarURL, blocked), edit, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		q := fmt.Sprintf("%s/search?location=Kamakura&checkIn=%s&checkOut=%s&minGuests=2",
			propertiesURL, monday, monday.AddDays(3))
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, q, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var results []response.SearchResultResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &results))
		require.Len(t, results, 1)
		assert.Equal(t, free, results[0].Property.ID)
		require.NotNil(t, results[0].Quote)
		assert.Equal(t, int64(30000), results[0].Quote.BaseTotal)
	})
}
