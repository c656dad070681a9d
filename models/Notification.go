package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model
	UserID  uint   `json:"userID" gorm:"not null;index"`
	Title   string `json:"title"`
	Message string `json:"message" gorm:"type:text"`
	Type    string `json:"type" gorm:"type:varchar(40);index"` // booking_request, booking_confirmed, ...
	RefID   uint   `json:"refID"`
	RefType string `json:"refType" gorm:"type:varchar(40)"` // booking, property, review
	IsRead  bool   `json:"isRead" gorm:"default:false;index"`
	User    User   `json:"user" gorm:"foreignKey:UserID"`
}
