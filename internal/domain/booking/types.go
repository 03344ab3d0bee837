package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// HoldsDates reports whether a booking in this status owns its calendar days.
func (s Status) HoldsDates() bool {
	switch s {
	case StatusPending, StatusConfirmed:
		return true
	case StatusCancelled:
		return false
	default:
		return false
	}
}
