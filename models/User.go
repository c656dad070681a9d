package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	Password            string         `json:"password"`
	SocialLogin         bool           `json:"socialLogin"`
	SocialProvider      string         `json:"socialProvider"`
	AvatarURL           string         `json:"avatarURL"`
	Bio                 string         `json:"bio"`
	Properties          []Property     `json:"properties" gorm:"foreignKey:HostID;references:ID"`
	SavedProperties     datatypes.JSON `json:"savedProperties"`
	PushTokens          datatypes.JSON `json:"pushTokens"`
	AllowsNotifications *bool          `json:"allowsNotifications"`
	Role                string         `json:"role" gorm:"type:varchar(20);default:user;index"` // user, host, admin, super_admin
}

// Custom JSON marshaling to handle JSON fields properly
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Password        string   `json:"password,omitempty"`
		SavedProperties []int    `json:"savedProperties,omitempty"`
		PushTokens      []string `json:"pushTokens,omitempty"`
		*Alias
	}{
		SavedProperties: []int{},
		PushTokens:      []string{},
		Alias:           (*Alias)(u),
	}

	if u.SavedProperties != nil {
		var saved []int
		if err := json.Unmarshal(u.SavedProperties, &saved); err == nil {
			aux.SavedProperties = saved
		}
	}

	if u.PushTokens != nil {
		var tokens []string
		if err := json.Unmarshal(u.PushTokens, &tokens); err == nil {
			aux.PushTokens = tokens
		}
	}

	return json.Marshal(aux)
}
