package httperr

import (
	"net/http"
	"strconv"

	"stay-calendar/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// RetryAfterSeconds is advertised on 503 responses caused by transient
// storage failures.
const RetryAfterSeconds = 1

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// ConflictDetail names the dates that could not be booked or edited.
type ConflictDetail struct {
	Dates []string `json:"dates"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithUseCaseError maps the error taxonomy onto a status code. Unknown
// errors become 500 without leaking their text.
func AbortWithUseCaseError(c *gin.Context, err error) {
	status, msg, detail := Classify(err)
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
	}
	AbortWithError(c, status, err, msg, detail)
}

func Classify(err error) (status int, msg string, detail any) {
	var conflict *errs.ConflictError
	switch {
	case errs.As(err, &conflict):
		return http.StatusConflict, "Requested dates are unavailable", ConflictDetail{Dates: conflict.Dates}
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict, "Requested dates are unavailable", ConflictDetail{Dates: []string{}}
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, validationMessage(err), nil
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "Forbidden", nil
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Not found", nil
	case errs.Is(err, errs.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "Calendar is too large; prune past dates and retry", nil
	case errs.Is(err, errs.ErrTransient):
		return http.StatusServiceUnavailable, "Temporarily unavailable, retry the request", nil
	default:
		return http.StatusInternalServerError, "Internal server error", nil
	}
}

// validationMessage keeps the outermost message; validation errors are built
// from caller input and safe to echo.
func validationMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Invalid request"
}
