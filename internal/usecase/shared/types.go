package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicBookingCreated   = "booking_created"
	TopicBookingConfirmed = "booking_confirmed"
	TopicBookingCancelled = "booking_cancelled"

	NotificationKindEmail = "email"
)

// BookingNotification is the outbox payload for booking lifecycle events.
type BookingNotification struct {
	BookingID  uuid.UUID `json:"booking_id"`
	PropertyID uuid.UUID `json:"property_id"`
	HostID     uuid.UUID `json:"host_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
