package utils

import (
	"testing"

	"gorm.io/gorm"

	"github.com/anemettemadsen33/RentHub-sub010/models"
)

func userWithID(id uint, role string) *models.User {
	return &models.User{Model: gorm.Model{ID: id}, Role: role}
}

func TestCanPropertyOwnership(t *testing.T) {
	owner := userWithID(1, "user")
	stranger := userWithID(2, "user")
	admin := userWithID(3, "admin")

	property := &models.Property{HostID: 1}

	if !Can(owner, ActionUpdate, property) {
		t.Fatal("owner must be able to update their property")
	}
	if Can(stranger, ActionUpdate, property) {
		t.Fatal("stranger must not update someone else's property")
	}
	if !Can(stranger, ActionView, property) {
		t.Fatal("anyone may view a property")
	}
	if !Can(admin, ActionDelete, property) {
		t.Fatal("admin may delete any property")
	}
	if Can(nil, ActionView, property) {
		t.Fatal("nil user is always denied")
	}
}

func TestCanBookingRoles(t *testing.T) {
	guest := userWithID(10, "user")
	host := userWithID(20, "user")
	stranger := userWithID(30, "user")

	booking := &models.Booking{
		GuestID:  10,
		Property: &models.Property{HostID: 20},
	}

	if !Can(guest, ActionView, booking) || !Can(host, ActionView, booking) {
		t.Fatal("guest and host may view the booking")
	}
	if Can(stranger, ActionView, booking) {
		t.Fatal("stranger must not view the booking")
	}
	if !Can(guest, ActionCancel, booking) || !Can(host, ActionCancel, booking) {
		t.Fatal("guest and host may cancel")
	}
	if Can(guest, ActionConfirm, booking) {
		t.Fatal("only the host confirms a booking")
	}
	if !Can(host, ActionConfirm, booking) {
		t.Fatal("host must be able to confirm")
	}
}

func TestCanUnknownActionDenied(t *testing.T) {
	owner := userWithID(1, "user")
	if Can(owner, "frobnicate", &models.Property{HostID: 1}) {
		t.Fatal("unknown actions are denied by default")
	}
}
