package api

import (
	"context"
	"net/http"

	"stay-calendar/internal/domain/user"
	reqdto "stay-calendar/internal/handler/dto/request"
	resdto "stay-calendar/internal/handler/dto/response"
	"stay-calendar/internal/handler/httperr"
	"stay-calendar/internal/handler/middleware"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/commands"
	"stay-calendar/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoActor = errs.New("authenticated user missing from context")

type BookingHandler struct {
	cmds    commands.BookingCommands
	queries queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, queries: q}
}

// @Summary Create booking
// @Description Reserve [checkIn, checkOut) for the caller. Returns 409 with the conflicting dates when any night is taken.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput(actor.ID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+result.Booking.ID.String())
	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Get booking
// @Description Visible to the guest, the property's host and admins
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description as=guest (default) lists stays booked by the caller, as=host lists bookings on the caller's properties. Newest first.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param as query string false "guest or host"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	as, err := queries.ParseListAs(q.As)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	views, next, err := h.queries.List(c.Request.Context(), actor, as, &queries.Cursor{After: q.Cursor}, q.Limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(views, next))
}

// @Summary Cancel booking
// @Description Guest, host or admin. Frees the booked nights.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cmds.CancelBooking)
}

// @Summary Approve pending booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/approve [post]
func (h *BookingHandler) Approve(c *gin.Context) {
	h.transition(c, h.cmds.ApproveBooking)
}

// @Summary Decline pending booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/decline [post]
func (h *BookingHandler) Decline(c *gin.Context) {
	h.transition(c, h.cmds.DeclineBooking)
}

type bookingTransition func(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.BookingView, error)

func (h *BookingHandler) transition(c *gin.Context, fn bookingTransition) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func requireActor(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return user.Actor{}, false
	}
	return actor, true
}
