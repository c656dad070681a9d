package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking models a guest's stay on a Property. The price fields are computed
// once at creation time by the stay calculator and never recomputed, so a
// later change to the property's rates does not rewrite history.
type Booking struct {
	gorm.Model
	Reference  string    `json:"reference" gorm:"type:varchar(36);uniqueIndex"`
	PropertyID uint      `json:"propertyID" gorm:"not null;index"`
	GuestID    uint      `json:"guestID" gorm:"not null;index"`
	CheckIn    time.Time `json:"checkIn" gorm:"not null"`
	CheckOut   time.Time `json:"checkOut" gorm:"not null"`
	NumGuests  int       `json:"numGuests"`

	Nights          int     `json:"nights"`
	Subtotal        float64 `json:"subtotal"`
	CleaningFee     float64 `json:"cleaningFee"`
	SecurityDeposit float64 `json:"securityDeposit"`
	Taxes           float64 `json:"taxes"`
	TotalPrice      float64 `json:"totalPrice"`

	// pending, confirmed, checked_in, checked_out, completed, cancelled
	Status string `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Note   string `json:"note"`

	ExpiresAt   time.Time  `json:"expiresAt"` // confirmation window for pending requests
	ConfirmedAt *time.Time `json:"confirmedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Guest    *User     `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}
