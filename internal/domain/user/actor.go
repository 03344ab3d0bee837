package user

import "github.com/google/uuid"

// Actor is the authenticated caller of a command.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

// CanManage reports whether the actor may change the calendar or bookings of
// a property owned by hostID. Agents act on behalf of the host that invoked
// them, so their token subject is the host id.
func (a Actor) CanManage(hostID uuid.UUID) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleHost, RoleAgent:
		return a.ID == hostID
	case RoleGuest:
		return false
	default:
		return false
	}
}

// CanCancel reports whether the actor may cancel a booking made by guestID
// on a property owned by hostID.
func (a Actor) CanCancel(guestID, hostID uuid.UUID) bool {
	if a.CanManage(hostID) {
		return true
	}
	return a.ID == guestID
}
