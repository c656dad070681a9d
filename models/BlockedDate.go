package models

import (
	"time"

	"gorm.io/gorm"
)

// BlockedDate is an owner-declared unavailability range [StartDate, EndDate)
// independent of any booking.
type BlockedDate struct {
	gorm.Model
	PropertyID    uint      `json:"propertyID" gorm:"not null;index"`
	StartDate     time.Time `json:"startDate" gorm:"not null"`
	EndDate       time.Time `json:"endDate" gorm:"not null"`
	Reason        string    `json:"reason"`
	IsMaintenance bool      `json:"isMaintenance" gorm:"default:false"`
	Property      Property  `json:"property" gorm:"foreignKey:PropertyID"`
}
