package api

import (
	"net/http"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/user"
	reqdto "stay-calendar/internal/handler/dto/request"
	resdto "stay-calendar/internal/handler/dto/response"
	"stay-calendar/internal/handler/httperr"
	"stay-calendar/internal/handler/middleware"
	"stay-calendar/internal/pkg/clock"
	"stay-calendar/internal/usecase/commands"
	"stay-calendar/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PropertyHandler struct {
	properties queries.PropertyQueries
	calendars  queries.CalendarQueries
	bookings   queries.BookingQueries
	cmds       commands.CalendarCommands
	props      commands.PropertyCommands
	clock      clock.Clock
}

func NewPropertyHandler(
	properties queries.PropertyQueries,
	calendars queries.CalendarQueries,
	bookings queries.BookingQueries,
	cmds commands.CalendarCommands,
	props commands.PropertyCommands,
	clk clock.Clock,
) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		calendars:  calendars,
		bookings:   bookings,
		cmds:       cmds,
		props:      props,
		clock:      clk,
	}
}

// @Summary Add property
// @Description Creates the property and its empty calendar. hostId is honoured for admins only.
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddPropertyRequest true "Property"
// @Success 201 {object} resdto.PropertyResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.AddPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.props.AddProperty(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("Location", "/api/properties/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromPropertyView(view))
}

// @Summary Search properties
// @Description Filter by location and capacity; with checkIn/checkOut only properties free for the whole stay are returned, each with a quote
// @Tags properties
// @Produce json
// @Param location query string false "Location substring"
// @Param checkIn query string false "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string false "Check-out date (YYYY-MM-DD, exclusive)"
// @Param minGuests query int false "Minimum guest capacity"
// @Param limit query int false "Maximum results"
// @Success 200 {array} resdto.SearchResultResponse
// @Failure 400 {object} httperr.Response
// @Router /properties/search [get]
func (h *PropertyHandler) Search(c *gin.Context) {
	var q reqdto.SearchPropertiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	stay, err := q.Stay()
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	results, err := h.properties.Search(c.Request.Context(), queries.SearchInput{
		Location:  q.Location,
		Stay:      stay,
		MinGuests: q.MinGuests,
		Limit:     q.Limit,
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSearchResults(results))
}

// @Summary Get property
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} resdto.PropertyResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPropertyView(view))
}

// @Summary Quote a stay
// @Description Price breakdown for a prospective stay. Nothing is reserved.
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD, exclusive)"
// @Param guests query int false "Guest count (default 1)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/quote [get]
func (h *PropertyHandler) Quote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var q reqdto.QuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	stay, err := q.Stay()
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	view, err := h.properties.Quote(c.Request.Context(), id, stay, q.GuestCount())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// @Summary Calendar window
// @Description Days from..to inclusive (default: today plus 90 days). Hosts see notes and guest names.
// @Tags calendar
// @Produce json
// @Param id path string true "Property ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/calendar [get]
func (h *PropertyHandler) Calendar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var q reqdto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	window, err := q.Window(calendar.DateOf(h.clock.Now()), queries.DefaultCalendarWindowDays)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	var viewer *user.Actor
	if actor, ok := middleware.GetActor(c); ok {
		viewer = &actor
	}
	view, err := h.calendars.Window(c.Request.Context(), id, window, viewer)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarView(view))
}

// @Summary Export calendar as iCalendar
// @Description Blocked and booked days from today onward, one all-day event per stretch
// @Tags calendar
// @Produce text/calendar
// @Param id path string true "Property ID"
// @Success 200 {string} string
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/calendar.ics [get]
func (h *PropertyHandler) CalendarICS(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := h.calendars.ExportICS(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+id.String()+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

// @Summary Bulk edit calendar
// @Description Merge price, status, note or min-stay into every selected day. Booked days are skipped and reported.
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.BulkEditRequest true "Bulk edit"
// @Success 200 {object} resdto.BulkEditResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /properties/{id}/calendar [patch]
func (h *PropertyHandler) BulkEdit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.BulkEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput(id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	result, err := h.cmds.ApplyBulkEdit(c.Request.Context(), actor, in)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkEditResult(result))
}

// @Summary Prune past calendar days
// @Description Drop overrides strictly before a date. Days held by bookings are kept.
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.PruneRequest true "Cutoff"
// @Success 200 {object} resdto.PruneResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/calendar/prune [post]
func (h *PropertyHandler) Prune(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.PruneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cutoff, err := req.Cutoff()
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	result, err := h.cmds.PruneBefore(c.Request.Context(), actor, id, cutoff)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPruneResult(result))
}

// @Summary List a property's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/bookings [get]
func (h *PropertyHandler) ListBookings(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, next, err := h.bookings.ListByProperty(c.Request.Context(), actor, id, &queries.Cursor{After: q.Cursor}, q.Limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(views, next))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
