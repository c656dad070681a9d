package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomPrice is a per-date nightly price override. It takes precedence over
// the property's base nightly price for that date.
type CustomPrice struct {
	gorm.Model
	PropertyID uint      `json:"propertyID" gorm:"not null;uniqueIndex:idx_custom_price_property_date"`
	Date       time.Time `json:"date" gorm:"not null;uniqueIndex:idx_custom_price_property_date"`
	Price      float64   `json:"price" gorm:"not null"`
	Property   Property  `json:"property" gorm:"foreignKey:PropertyID"`
}
