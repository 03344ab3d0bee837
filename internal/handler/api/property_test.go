//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/handler/api"
	resdto "stay-calendar/internal/handler/dto/response"
	"stay-calendar/internal/pkg/clock"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/commands"
	"stay-calendar/internal/usecase/queries"
	"stay-calendar/tests/common/builder"
	"stay-calendar/tests/common/httptest"
	"stay-calendar/tests/common/testutil"
	commandsmock "stay-calendar/tests/mock/commands"
	queriesmock "stay-calendar/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PropertyHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockProperties   *queriesmock.MockPropertyQueries
	mockCalendars    *queriesmock.MockCalendarQueries
	mockBookings     *queriesmock.MockBookingQueries
	mockCalendarCmds *commandsmock.MockCalendarCommands
	mockPropertyCmds *commandsmock.MockPropertyCommands
	handler          *api.PropertyHandler
	actor            user.Actor
	propertyID       uuid.UUID
}

func (s *PropertyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockProperties = queriesmock.NewMockPropertyQueries(s.mockCtrl)
	s.mockCalendars = queriesmock.NewMockCalendarQueries(s.mockCtrl)
	s.mockBookings = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockCalendarCmds = commandsmock.NewMockCalendarCommands(s.mockCtrl)
	s.mockPropertyCmds = commandsmock.NewMockPropertyCommands(s.mockCtrl)
	s.handler = api.NewPropertyHandler(
		s.mockProperties,
		s.mockCalendars,
		s.mockBookings,
		s.mockCalendarCmds,
		s.mockPropertyCmds,
		clock.NewMockClock(time.Date(2030, 1, 10, 23, 30, 0, 0, time.UTC)),
	)
	s.actor = user.NewActor(uuid.New(), user.RoleHost)
	s.propertyID = uuid.New()

	auth := mockAuth(&s.actor)
	s.router.POST("/properties", auth, s.handler.Create)
	s.router.GET("/properties/search", s.handler.Search)
	s.router.GET("/properties/:id", s.handler.Get)
	s.router.GET("/properties/:id/quote", s.handler.Quote)
	s.router.GET("/properties/:id/calendar", mockOptionalAuth(&s.actor), s.handler.Calendar)
	s.router.GET("/properties/:id/calendar.ics", s.handler.CalendarICS)
	s.router.PATCH("/properties/:id/calendar", auth, s.handler.BulkEdit)
	s.router.POST("/properties/:id/calendar/prune", auth, s.handler.Prune)
	s.router.GET("/properties/:id/bookings", auth, s.handler.ListBookings)
}

func (s *PropertyHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPropertyHandlerSuite(t *testing.T) {
	suite.Run(t, new(PropertyHandlerTestSuite))
}

func (s *PropertyHandlerTestSuite) url(suffix string) string {
	return "/properties/" + s.propertyID.String() + suffix
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *PropertyHandlerTestSuite) TestCreate() {
	b := builder.NewPropertyBuilder().WithHost(s.actor.ID)
	reqBody := b.BuildAddRequestDTO()
	view := b.BuildView()

	s.Run("success: returns 201 Created", func() {
		s.mockPropertyCmds.EXPECT().AddProperty(gomock.Any(), s.actor, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ user.Actor, in commands.AddPropertyInput) (*queries.PropertyView, error) {
				s.Equal(b.Title, in.Title)
				s.Equal(b.MaxGuests, in.MaxGuests)
				s.Nil(in.HostID)
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/properties", reqBody, testToken)

		var response resdto.PropertyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(s.actor.ID, response.HostID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/properties/" + view.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "missing title", mutate: testutil.Field("title", nil), expectCode: http.StatusBadRequest},
			{name: "missing maxGuests", mutate: testutil.Field("maxGuests", nil), expectCode: http.StatusBadRequest},
			{name: "negative weekday price", mutate: testutil.Field("weekdayPrice", -1), expectCode: http.StatusBadRequest},
			{name: "currency too long", mutate: testutil.Field("currency", "JPYX"), expectCode: http.StatusBadRequest},
			{name: "currency not letters", mutate: testutil.Field("currency", "J1Y"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/properties", testutil.DtoMap(s.T(), reqBody, tc.mutate), testToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 403 Forbidden for guests", func() {
		s.mockPropertyCmds.EXPECT().AddProperty(gomock.Any(), s.actor, gomock.Any()).
			Return(nil, commands.ErrPropertyForbidden).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/properties", reqBody, testToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

// ================================================================================
// TestSearch / TestGet / TestQuote
// ================================================================================

func (s *PropertyHandlerTestSuite) TestSearch() {
	view := builder.NewPropertyBuilder().BuildView()

	s.Run("success: passes stay when both dates given", func() {
		s.mockProperties.EXPECT().Search(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in queries.SearchInput) ([]*queries.SearchResult, error) {
				s.Equal("Kamakura", in.Location)
				s.Equal(3, in.MinGuests)
				s.Require().NotNil(in.Stay)
				s.Equal(2, in.Stay.Nights())
				return []*queries.SearchResult{{Property: *view}}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/properties/search?location=Kamakura&checkIn=2030-03-04&checkOut=2030-03-06&minGuests=3", nil, "")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.Contains(rec.Body.String(), view.ID.String())
	})

	s.Run("success: no dates means no stay", func() {
		s.mockProperties.EXPECT().Search(gomock.Any(), queries.SearchInput{}).Return(nil, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/properties/search", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request on half a stay", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/properties/search?checkIn=2030-03-04", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "together")
	})
}

func (s *PropertyHandlerTestSuite) TestGet() {
	view := builder.NewPropertyBuilder().BuildView()

	s.Run("success", func() {
		s.mockProperties.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/properties/"+view.ID.String(), nil, "")

		var response resdto.PropertyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Title, response.Title)
		s.Equal(view.WeekendPrice, response.WeekendPrice)
	})

	s.Run("error: 404 Not Found", func() {
		missing := uuid.New()
		s.mockProperties.EXPECT().GetByID(gomock.Any(), missing).
			Return(nil, errs.Mark(errs.New("property not found"), errs.ErrNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/properties/"+missing.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *PropertyHandlerTestSuite) TestQuote() {
	s.Run("success: defaults to one guest", func() {
		s.mockProperties.EXPECT().Quote(gomock.Any(), s.propertyID, gomock.Any(), 1).
			DoAndReturn(func(_ context.Context, id uuid.UUID, stay calendar.DateRange, guests int) (*queries.QuoteView, error) {
				s.Equal("[2025-12-04,2025-12-07)", stay.String())
				return &queries.QuoteView{PropertyID: id, NightCount: 3, BaseTotal: 38000, GrandTotal: 44714}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/quote?checkIn=2025-12-04&checkOut=2025-12-07"), nil, "")

		var response resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(38000), response.BaseTotal)
		s.Equal(3, response.NightCount)
	})

	s.Run("error: 400 Bad Request", func() {
		for _, q := range []string{
			"/quote?checkIn=2025-12-04",
			"/quote?checkIn=2025-12-07&checkOut=2025-12-04",
			"/quote?checkIn=2025-12-04&checkOut=2025-12-07&guests=0x",
			"/quote?checkIn=0002-01-01&checkOut=9999-12-31",
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url(q), nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})
}

// ================================================================================
// TestCalendar
// ================================================================================

func (s *PropertyHandlerTestSuite) TestCalendar() {
	view := &queries.CalendarView{
		PropertyID: s.propertyID,
		Version:    4,
		From:       "2030-01-10",
		To:         "2030-01-10",
		Currency:   "JPY",
		Days:       []queries.CalendarDayView{{Date: "2030-01-10", Status: "available", Price: 10000, PriceSource: "weekday"}},
	}

	s.Run("anonymous viewer gets the default window from today", func() {
		s.mockCalendars.EXPECT().Window(gomock.Any(), s.propertyID, gomock.Any(), gomock.Nil()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, r calendar.DateRange, _ *user.Actor) (*queries.CalendarView, error) {
				s.Equal("2030-01-10", r.Start().String())
				s.Equal(queries.DefaultCalendarWindowDays, r.Nights())
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/calendar"), nil, "")

		var response resdto.CalendarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(4), response.Version)
		s.Len(response.Days, 1)
	})

	s.Run("authenticated viewer is passed through with an inclusive window", func() {
		s.mockCalendars.EXPECT().Window(gomock.Any(), s.propertyID, gomock.Any(), &s.actor).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, r calendar.DateRange, _ *user.Actor) (*queries.CalendarView, error) {
				s.Equal("[2030-02-01,2030-03-01)", r.String())
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/calendar?from=2030-02-01&to=2030-02-28"), nil, testToken)
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("error: 400 Bad Request on reversed window", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/calendar?from=2030-02-10&to=2030-02-01"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "before")
	})

	s.Run("ics export", func() {
		body := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
		s.mockCalendars.EXPECT().ExportICS(gomock.Any(), s.propertyID).Return(body, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/calendar.ics"), nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal(string(body), rec.Body.String())
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			"Content-Type":        "text/calendar; charset=utf-8",
			"Content-Disposition": `attachment; filename="` + s.propertyID.String() + `.ics"`,
		})
	})
}

// ================================================================================
// TestBulkEdit / TestPrune
// ================================================================================

func (s *PropertyHandlerTestSuite) TestBulkEdit() {
	price := int64(20000)
	reqBody := map[string]any{
		"startDate": "2025-12-01",
		"endDate":   "2025-12-10",
		"applyTo":   "weekends",
		"price":     price,
	}

	s.Run("success: returns updated and skipped dates", func() {
		s.mockCalendarCmds.EXPECT().ApplyBulkEdit(gomock.Any(), s.actor, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ user.Actor, in commands.BulkEditInput) (*commands.BulkEditResult, error) {
				s.Equal(s.propertyID, in.PropertyID)
				s.Equal(10, in.Range.Nights())
				s.Equal(calendar.FilterWeekends, in.Filter)
				s.Equal(price, *in.Edit.Price)
				return &commands.BulkEditResult{
					Updated: []string{"2025-12-05", "2025-12-07"},
					Skipped: []string{"2025-12-06"},
					Version: 7,
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.url("/calendar"), reqBody, testToken)

		var response resdto.BulkEditResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal([]string{"2025-12-06"}, response.Skipped)
		s.Equal(int64(7), response.Version)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "status booked", mutate: testutil.Field("status", "booked"), expectCode: http.StatusBadRequest},
			{name: "negative price", mutate: testutil.Field("price", -1), expectCode: http.StatusBadRequest},
			{name: "price above cap", mutate: testutil.Field("price", int64(9_000_000_000_000_000)), expectCode: http.StatusBadRequest},
			{name: "unknown filter", mutate: testutil.Field("applyTo", "holidays"), expectCode: http.StatusBadRequest},
			{name: "minStay zero", mutate: testutil.Field("minStay", 0), expectCode: http.StatusBadRequest},
			{name: "reversed range", mutate: testutil.Field("endDate", "2025-11-30"), expectCode: http.StatusBadRequest},
			{name: "missing startDate", mutate: testutil.Field("startDate", nil), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.url("/calendar"), testutil.DtoMap(s.T(), reqBody, tc.mutate), testToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 403 Forbidden for other hosts", func() {
		s.mockCalendarCmds.EXPECT().ApplyBulkEdit(gomock.Any(), s.actor, gomock.Any()).
			Return(nil, commands.ErrCalendarForbidden).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.url("/calendar"), reqBody, testToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 401 Unauthorized", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.url("/calendar"), reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *PropertyHandlerTestSuite) TestPrune() {
	s.Run("success", func() {
		s.mockCalendarCmds.EXPECT().PruneBefore(gomock.Any(), s.actor, s.propertyID, calendar.MustParseDate("2030-01-01")).
			Return(&commands.PruneResult{Removed: 12, Version: 9}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.url("/calendar/prune"), map[string]any{"before": "2030-01-01"}, testToken)

		var response resdto.PruneResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(12, response.Removed)
	})

	s.Run("error: future cutoff", func() {
		s.mockCalendarCmds.EXPECT().PruneBefore(gomock.Any(), s.actor, s.propertyID, gomock.Any()).
			Return(nil, commands.ErrPruneInFuture).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.url("/calendar/prune"), map[string]any{"before": "2031-01-01"}, testToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "after today")
	})

	s.Run("error: missing cutoff", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.url("/calendar/prune"), map[string]any{}, testToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *PropertyHandlerTestSuite) TestListBookings() {
	views := []*queries.BookingView{builder.NewBookingBuilder().BuildView()}

	s.Run("success", func() {
		s.mockBookings.EXPECT().ListByProperty(gomock.Any(), s.actor, s.propertyID, &queries.Cursor{}, 5).
			Return(views, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/bookings?limit=5"), nil, testToken)

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Nil(response.NextCursor)
	})

	s.Run("error: 403 Forbidden", func() {
		s.mockBookings.EXPECT().ListByProperty(gomock.Any(), s.actor, s.propertyID, gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrBookingAccess).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/bookings"), nil, testToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}
