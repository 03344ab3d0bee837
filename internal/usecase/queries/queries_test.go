//go:build unit

package queries_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"stay-calendar/internal/domain/booking"
	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/pricing"
	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/infra/memstore"
	"stay-calendar/internal/pkg/clock"
	"stay-calendar/internal/pkg/config"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/commands"
	"stay-calendar/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type QueriesTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.MockClock

	bookingCmds  commands.BookingCommands
	calendarCmd  commands.CalendarCommands
	propertyCmds commands.PropertyCommands

	properties queries.PropertyQueries
	calendars  queries.CalendarQueries
	bookings   queries.BookingQueries

	host     user.Actor
	guest    user.Actor
	kamakura uuid.UUID
	hakone   uuid.UUID
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))

	store := memstore.New(config.StoreConfig{OpTimeout: 2 * time.Second})
	uow := memstore.NewUoW(store)
	calc := pricing.NewDefaultCalculator()

	s.propertyCmds = commands.NewPropertyCommands(uow, s.clock)
	s.bookingCmds = commands.NewBookingCommands(uow, calc, s.clock, false)
	s.calendarCmd = commands.NewCalendarCommands(uow, s.clock)

	propertyStore := memstore.NewPropertyReadStore(store)
	calendarStore := memstore.NewCalendarReadStore(store)
	s.properties = queries.NewPropertyQueries(propertyStore, calendarStore, calc)
	s.calendars = queries.NewCalendarQueries(propertyStore, calendarStore, s.clock)
	s.bookings = queries.NewBookingQueries(memstore.NewBookingReadStore(store), propertyStore)

	s.host = user.NewActor(uuid.New(), user.RoleHost)
	s.guest = user.NewActor(uuid.New(), user.RoleGuest)

	k, err := s.propertyCmds.AddProperty(s.ctx, s.host, commands.AddPropertyInput{
		Title: "Seaside Cabin", Location: "Kamakura, Kanagawa",
		WeekdayPrice: 10000, WeekendPrice: 14000, ExtraGuestPrice: 1000,
		BaseGuests: 6, MaxGuests: 8,
	})
	s.Require().NoError(err)
	s.kamakura = k.ID

	s.clock.Add(time.Minute)
	h, err := s.propertyCmds.AddProperty(s.ctx, user.NewActor(uuid.New(), user.RoleHost), commands.AddPropertyInput{
		Title: "Onsen Room", Location: "Hakone, Kanagawa",
		WeekdayPrice: 20000, WeekendPrice: 25000, MaxGuests: 2,
	})
	s.Require().NoError(err)
	s.hakone = h.ID
}

func (s *QueriesTestSuite) bookAs(guest user.Actor, propertyID uuid.UUID, checkIn, checkOut string) *queries.BookingView {
	stay, err := calendar.ParseDateRange(checkIn, checkOut)
	s.Require().NoError(err)
	res, err := s.bookingCmds.CreateBooking(s.ctx, commands.CreateBookingInput{
		PropertyID: propertyID,
		Stay:       stay,
		Guest:      booking.Guest{ID: guest.ID, DisplayName: "Aiko"},
		GuestCount: 2,
	})
	s.Require().NoError(err)
	return res.Booking
}

func mustRange(checkIn, checkOut string) calendar.DateRange {
	r, err := calendar.ParseDateRange(checkIn, checkOut)
	if err != nil {
		panic(err)
	}
	return r
}

// =============================================================================
// Calendar window
// =============================================================================

func (s *QueriesTestSuite) TestWindow_Privacy() {
	b := s.bookAs(s.guest, s.kamakura, "2025-12-04", "2025-12-07")
	window := mustRange("2025-12-04", "2025-12-08")

	admin := user.NewActor(uuid.New(), user.RoleAdmin)
	otherHost := user.NewActor(uuid.New(), user.RoleHost)

	tests := []struct {
		name    string
		viewer  *user.Actor
		private bool
	}{
		{name: "anonymous", viewer: nil},
		{name: "guest who booked", viewer: &s.guest},
		{name: "another host", viewer: &otherHost},
		{name: "owning host", viewer: &s.host, private: true},
		{name: "admin", viewer: &admin, private: true},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			view, err := s.calendars.Window(s.ctx, s.kamakura, window, tt.viewer)
			s.Require().NoError(err)
			s.Require().Len(view.Days, 4)
			s.Equal("2025-12-04", view.From)
			s.Equal("2025-12-07", view.To)

			thu := view.Days[0]
			s.Equal("booked", thu.Status)
			s.Equal(int64(10000), thu.Price)
			if tt.private {
				s.Require().NotNil(thu.GuestName)
				s.Equal("Aiko", *thu.GuestName)
				s.Require().NotNil(thu.BookingID)
				s.Equal(b.ID, *thu.BookingID)
			} else {
				s.Nil(thu.GuestName)
				s.Nil(thu.BookingID)
			}

			sun := view.Days[3]
			s.Equal("available", sun.Status)
			s.True(sun.IsWeekend)
			s.Equal(int64(14000), sun.Price)
			s.Equal("weekend", sun.PriceSource)
		})
	}
}

func (s *QueriesTestSuite) TestWindow_ShowsOverridesAndNotes() {
	_, err := s.calendarCmd.ApplyBulkEdit(s.ctx, s.host, commands.BulkEditInput{
		PropertyID: s.kamakura,
		Range:      mustRange("2025-12-24", "2025-12-26"),
		Edit:       calendar.BulkEdit{Price: ptr(int64(30000)), Note: ptr("holiday rate")},
	})
	s.Require().NoError(err)

	anon, err := s.calendars.Window(s.ctx, s.kamakura, mustRange("2025-12-24", "2025-12-25"), nil)
	s.Require().NoError(err)
	s.Equal(int64(30000), anon.Days[0].Price)
	s.Equal("override", anon.Days[0].PriceSource)
	s.Nil(anon.Days[0].Note)

	own, err := s.calendars.Window(s.ctx, s.kamakura, mustRange("2025-12-24", "2025-12-25"), &s.host)
	s.Require().NoError(err)
	s.Require().NotNil(own.Days[0].Note)
	s.Equal("holiday rate", *own.Days[0].Note)
	s.Equal(anon.Version, own.Version)
}

func (s *QueriesTestSuite) TestWindow_Errors() {
	_, err := s.calendars.Window(s.ctx, s.kamakura, mustRange("2025-01-01", "2026-03-01"), nil)
	s.True(errs.Is(err, errs.ErrValidation))

	_, err = s.calendars.Window(s.ctx, uuid.New(), mustRange("2025-12-01", "2025-12-02"), nil)
	s.True(errs.Is(err, errs.ErrNotFound))
}

func (s *QueriesTestSuite) TestExportICS() {
	s.bookAs(s.guest, s.kamakura, "2025-12-04", "2025-12-07")
	_, err := s.calendarCmd.ApplyBulkEdit(s.ctx, s.host, commands.BulkEditInput{
		PropertyID: s.kamakura,
		Range:      mustRange("2025-12-20", "2025-12-22"),
		Edit:       calendar.BulkEdit{Status: ptr(calendar.StatusBlocked)},
	})
	s.Require().NoError(err)

	raw, err := s.calendars.ExportICS(s.ctx, s.kamakura)
	s.Require().NoError(err)
	ics := string(raw)

	s.True(strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	s.True(strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	s.Equal(2, strings.Count(ics, "BEGIN:VEVENT"))
	s.Contains(ics, "DTSTART;VALUE=DATE:20251204\r\nDTEND;VALUE=DATE:20251207\r\nSUMMARY:Reserved")
	s.Contains(ics, "DTSTART;VALUE=DATE:20251220\r\nDTEND;VALUE=DATE:20251222\r\nSUMMARY:Not available")
	s.NotContains(ics, "Aiko")
}

// =============================================================================
// Property search and quotes
// =============================================================================

func (s *QueriesTestSuite) TestSearch() {
	s.bookAs(s.guest, s.kamakura, "2025-12-04", "2025-12-07")

	s.Run("by location, newest first", func() {
		res, err := s.properties.Search(s.ctx, queries.SearchInput{Location: "kanagawa"})
		s.Require().NoError(err)
		s.Require().Len(res, 2)
		s.Equal(s.hakone, res[0].Property.ID)
		s.Nil(res[0].Quote)
	})

	s.Run("capacity", func() {
		res, err := s.properties.Search(s.ctx, queries.SearchInput{MinGuests: 3})
		s.Require().NoError(err)
		s.Require().Len(res, 1)
		s.Equal(s.kamakura, res[0].Property.ID)
	})

	s.Run("booked property drops out", func() {
		stay := mustRange("2025-12-05", "2025-12-06")
		res, err := s.properties.Search(s.ctx, queries.SearchInput{Stay: &stay})
		s.Require().NoError(err)
		s.Require().Len(res, 1)
		s.Equal(s.hakone, res[0].Property.ID)
		s.Require().NotNil(res[0].Quote)
		s.Equal(int64(25000), res[0].Quote.BaseTotal)
	})

	s.Run("negative guests", func() {
		_, err := s.properties.Search(s.ctx, queries.SearchInput{MinGuests: -1})
		s.True(errs.Is(err, errs.ErrValidation))
	})
}

// addKyotoListings adds n properties, each newer than the last, and blocks
// stay on every one of them when busy is set.
func (s *QueriesTestSuite) addKyotoListings(n int, stay calendar.DateRange, busy bool) []uuid.UUID {
	blocked := calendar.StatusBlocked
	ids := make([]uuid.UUID, 0, n)
	for i := range n {
		s.clock.Add(time.Minute)
		p, err := s.propertyCmds.AddProperty(s.ctx, s.host, commands.AddPropertyInput{
			Title: fmt.Sprintf("Machiya %d", i), Location: "Higashiyama, Kyoto",
			WeekdayPrice: 18000, WeekendPrice: 22000, MaxGuests: 4,
		})
		s.Require().NoError(err)
		if busy {
			_, err = s.calendarCmd.ApplyBulkEdit(s.ctx, s.host, commands.BulkEditInput{
				PropertyID: p.ID,
				Range:      stay,
				Edit:       calendar.BulkEdit{Status: &blocked},
			})
			s.Require().NoError(err)
		}
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *QueriesTestSuite) TestSearch_BusyCandidatesDoNotHideFreeOnes() {
	stay := mustRange("2025-12-04", "2025-12-07")

	s.Run("newer booked listings fill the limit", func() {
		s.SetupTest()
		free := s.addKyotoListings(1, stay, false)[0]
		for _, id := range s.addKyotoListings(3, stay, false) {
			s.bookAs(s.guest, id, "2025-12-04", "2025-12-07")
		}

		res, err := s.properties.Search(s.ctx, queries.SearchInput{Location: "kyoto", Stay: &stay, Limit: 3})
		s.Require().NoError(err)
		s.Require().Len(res, 1)
		s.Equal(free, res[0].Property.ID)
		s.Require().NotNil(res[0].Quote)
	})

	s.Run("free listing beyond the first candidate page", func() {
		s.SetupTest()
		free := s.addKyotoListings(1, stay, false)[0]
		s.addKyotoListings(101, stay, true)

		res, err := s.properties.Search(s.ctx, queries.SearchInput{Location: "kyoto", Stay: &stay, Limit: 1})
		s.Require().NoError(err)
		s.Require().Len(res, 1)
		s.Equal(free, res[0].Property.ID)
	})

	s.Run("limit stops the scan early", func() {
		s.SetupTest()
		s.addKyotoListings(5, stay, false)

		res, err := s.properties.Search(s.ctx, queries.SearchInput{Location: "kyoto", Stay: &stay, Limit: 2})
		s.Require().NoError(err)
		s.Len(res, 2)
	})
}

func (s *QueriesTestSuite) TestQuote() {
	quote, err := s.properties.Quote(s.ctx, s.kamakura, mustRange("2025-12-04", "2025-12-07"), 8)
	s.Require().NoError(err)
	s.Equal(int64(38000), quote.BaseTotal)
	s.Equal(int64(56073), quote.GrandTotal)
	s.Equal([]string{"weekday", "weekend", "weekend"}, []string{quote.Nights[0].Source, quote.Nights[1].Source, quote.Nights[2].Source})

	_, err = s.properties.Quote(s.ctx, s.kamakura, mustRange("2025-12-04", "2025-12-07"), 9)
	s.True(errs.Is(err, errs.ErrValidation))

	_, err = s.properties.Quote(s.ctx, uuid.New(), mustRange("2025-12-04", "2025-12-07"), 1)
	s.True(errs.Is(err, errs.ErrNotFound))
}

// =============================================================================
// Bookings
// =============================================================================

func (s *QueriesTestSuite) TestList_Paginates() {
	var ids []uuid.UUID
	for i := range 5 {
		s.clock.Add(time.Minute)
		day := 1 + i*3
		checkIn := calendar.NewDate(2025, time.December, day)
		b := s.bookAs(s.guest, s.kamakura, checkIn.String(), checkIn.AddDays(2).String())
		ids = append(ids, b.ID)
	}
	// Newest first.
	want := []uuid.UUID{ids[4], ids[3], ids[2], ids[1], ids[0]}

	var (
		got    []uuid.UUID
		cursor *queries.Cursor
	)
	for page := 0; ; page++ {
		s.Require().Less(page, 5, "pagination does not terminate")
		views, next, err := s.bookings.List(s.ctx, s.guest, queries.ListAsGuest, cursor, 2)
		s.Require().NoError(err)
		for _, v := range views {
			got = append(got, v.ID)
		}
		if next == nil {
			break
		}
		cursor = next
	}
	s.Equal(want, got)

	hostViews, _, err := s.bookings.List(s.ctx, s.host, queries.ListAsHost, nil, 0)
	s.Require().NoError(err)
	s.Len(hostViews, 5)

	byProperty, _, err := s.bookings.ListByProperty(s.ctx, s.host, s.kamakura, nil, 10)
	s.Require().NoError(err)
	s.Len(byProperty, 5)
}

func (s *QueriesTestSuite) TestBookingAccess() {
	b := s.bookAs(s.guest, s.kamakura, "2025-12-04", "2025-12-07")

	got, err := s.bookings.GetByID(s.ctx, s.guest, b.ID)
	s.Require().NoError(err)
	s.Equal(b.ID, got.ID)

	_, err = s.bookings.GetByID(s.ctx, s.host, b.ID)
	s.NoError(err)

	_, err = s.bookings.GetByID(s.ctx, user.NewActor(uuid.New(), user.RoleGuest), b.ID)
	s.True(errs.Is(err, errs.ErrForbidden))

	_, err = s.bookings.GetByID(s.ctx, s.guest, uuid.New())
	s.True(errs.Is(err, errs.ErrNotFound))

	_, _, err = s.bookings.List(s.ctx, s.guest, queries.ListAsHost, nil, 10)
	s.True(errs.Is(err, errs.ErrForbidden))

	_, _, err = s.bookings.ListByProperty(s.ctx, user.NewActor(uuid.New(), user.RoleHost), s.kamakura, nil, 10)
	s.True(errs.Is(err, errs.ErrForbidden))

	_, _, err = s.bookings.List(s.ctx, s.guest, queries.ListAsGuest, &queries.Cursor{After: "garbage"}, 10)
	s.True(errs.Is(err, errs.ErrValidation))
}

func ptr[T any](v T) *T {
	return &v
}
