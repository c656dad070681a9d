package utils

import "github.com/anemettemadsen33/RentHub-sub010/models"

// Actions a user can attempt on a resource.
const (
	ActionView    = "view"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// Can is the single capability check: given the acting user, an action and a
// resource it returns an allow/deny decision. It is a pure function; every
// role or ownership rule lives here instead of being scattered across
// handlers.
func Can(user *models.User, action string, resource interface{}) bool {
	if user == nil {
		return false
	}
	if user.Role == "admin" || user.Role == "super_admin" {
		return true
	}

	switch res := resource.(type) {
	case *models.Property:
		switch action {
		case ActionView:
			return true
		case ActionUpdate, ActionDelete:
			return res.HostID == user.ID
		}

	case *models.Booking:
		isGuest := res.GuestID == user.ID
		isHost := res.Property != nil && res.Property.HostID == user.ID
		switch action {
		case ActionView:
			return isGuest || isHost
		case ActionCancel:
			return isGuest || isHost
		case ActionConfirm, ActionUpdate:
			// only the host moves a booking through its lifecycle
			return isHost
		}

	case *models.BlockedDate:
		switch action {
		case ActionView:
			return true
		case ActionUpdate, ActionDelete:
			return res.Property.HostID == user.ID
		}

	case *models.Review:
		switch action {
		case ActionView:
			return true
		case ActionUpdate, ActionDelete:
			return res.UserID == user.ID
		}
	}

	return false
}
