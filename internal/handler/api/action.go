package api

import (
	"io"
	"net/http"

	resdto "stay-calendar/internal/handler/dto/response"
	"stay-calendar/internal/handler/httperr"
	"stay-calendar/internal/pkg/errs"
	"stay-calendar/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const maxActionBodyBytes = 64 << 10

type ActionHandler struct {
	dispatcher commands.ActionDispatcher
}

func NewActionHandler(dispatcher commands.ActionDispatcher) *ActionHandler {
	return &ActionHandler{dispatcher: dispatcher}
}

// @Summary Dispatch an action
// @Description Entry point for automated agents. The body is {"type": "...", "payload": {...}} with type one of UPDATE_PRICE, BLOCK_DATES, UNBLOCK_DATES, APPROVE_BOOKING, DECLINE_BOOKING, CANCEL_BOOKING, ADD_PROPERTY. Date ranges are inclusive of endDate.
// @Tags actions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "Action envelope"
// @Success 200 {object} resdto.ActionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /actions [post]
func (h *ActionHandler) Dispatch(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxActionBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errs.As(err, &tooLarge) {
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Request body too large", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	action, err := commands.DecodeAction(raw)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), actor, action)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDispatchResult(result))
}
