package response

import (
	"stay-calendar/internal/usecase/commands"
	"stay-calendar/internal/usecase/queries"
)

type ActionResponse struct {
	Type   string `json:"type"`
	Result any    `json:"result"`
}

// FromDispatchResult renders the command result with the same DTOs the
// resource endpoints use.
func FromDispatchResult(r *commands.DispatchResult) *ActionResponse {
	resp := &ActionResponse{Type: string(r.Type)}
	switch v := r.Result.(type) {
	case *commands.BulkEditResult:
		resp.Result = FromBulkEditResult(v)
	case *queries.BookingView:
		resp.Result = FromBookingView(v)
	case *queries.PropertyView:
		resp.Result = FromPropertyView(v)
	default:
		resp.Result = v
	}
	return resp
}
