package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

// NotificationService handles notification rows and push delivery for
// booking lifecycle events. Push delivery is best-effort and runs off the
// request path; the DB row is the source of truth.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotificationData is the data payload attached to push messages for deep
// linking on the client.
type NotificationData struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	PropertyID string `json:"propertyId,omitempty"`
	UserID     string `json:"userId,omitempty"`
	HostID     string `json:"hostId,omitempty"`
}

// getUserPushTokens retrieves all push tokens for a user
func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user has notifications disabled or no tokens")
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}

	return tokens, nil
}

// SendNotificationToUser persists a notification row and pushes it to every
// registered device token.
func (ns *NotificationService) SendNotificationToUser(userID uint, title, body string, data NotificationData) error {
	refID, _ := strconv.ParseUint(data.ID, 10, 32)
	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: body,
		Type:    data.Type,
		RefID:   uint(refID),
		RefType: "booking",
	}
	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to persist notification for user %d: %v", userID, err)
	}

	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		log.Printf("Skipping push for user %d: %v", userID, err)
		return nil
	}

	dataMap := map[string]string{
		"type":       data.Type,
		"id":         data.ID,
		"propertyId": data.PropertyID,
		"userId":     data.UserID,
		"hostId":     data.HostID,
	}

	var lastError error
	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, dataMap); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token, err)
			lastError = err
		}
	}

	return lastError
}

// NotifyBookingRequested tells the host a new booking request arrived.
func (ns *NotificationService) NotifyBookingRequested(booking *models.Booking, property *models.Property, guestName string) error {
	title := "New Booking Request"
	body := fmt.Sprintf("%s requested %s from %s to %s",
		guestName, property.Title,
		booking.CheckIn.Format("Jan 2, 2006"), booking.CheckOut.Format("Jan 2, 2006"))

	return ns.SendNotificationToUser(property.HostID, title, body, NotificationData{
		Type:       "booking_request",
		ID:         strconv.FormatUint(uint64(booking.ID), 10),
		PropertyID: strconv.FormatUint(uint64(property.ID), 10),
		HostID:     strconv.FormatUint(uint64(property.HostID), 10),
		UserID:     strconv.FormatUint(uint64(booking.GuestID), 10),
	})
}

// NotifyBookingStatus tells the guest their booking moved to a new status.
func (ns *NotificationService) NotifyBookingStatus(booking *models.Booking, property *models.Property, status string) error {
	titles := map[string]string{
		"confirmed":   "Booking Confirmed",
		"cancelled":   "Booking Cancelled",
		"checked_in":  "Checked In",
		"checked_out": "Checked Out",
		"completed":   "Stay Completed",
	}
	title, ok := titles[status]
	if !ok {
		title = "Booking Updated"
	}
	body := fmt.Sprintf("Your booking for %s is now %s", property.Title, status)

	return ns.SendNotificationToUser(booking.GuestID, title, body, NotificationData{
		Type:       "booking_" + status,
		ID:         strconv.FormatUint(uint64(booking.ID), 10),
		PropertyID: strconv.FormatUint(uint64(property.ID), 10),
		UserID:     strconv.FormatUint(uint64(booking.GuestID), 10),
	})
}
