package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/database"
	"github.com/jkimani5/fundi_connect/models"
	"github.com/jkimani5/fundi_connect/websocket"
)

// notifyTx stores a notification inside the caller's transaction so that the
// row commits or rolls back together with the state change that produced it.
// The websocket push happens after commit, via pushNotification.
func notifyTx(tx *gorm.DB, userID uuid.UUID, title, message, ntype string, data map[string]any) (*models.Notification, error) {
	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    ntype,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		n.Data = datatypes.JSON(raw)
	}
	if err := tx.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func pushNotification(n *models.Notification) {
	websocket.Notify(n)
}

func ListNotifications(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func MarkNotificationRead(notificationID, userID uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	err := database.DB.
		Where("id = ? AND user_id = ?", notificationID, userID).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("notification not found")
		}
		return nil, err
	}
	if !n.IsRead {
		if err := database.DB.Model(&n).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		n.IsRead = true
	}
	return &n, nil
}

func MarkAllNotificationsRead(userID uuid.UUID) (int64, error) {
	res := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// SendBookingReminders notifies both parties of confirmed bookings starting
// roughly an hour from now. Callers run it every 5 minutes; the matching
// 5-minute window one hour out means each booking is picked up exactly once.
func SendBookingReminders() (int, error) {
	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.Booking
	err := database.DB.
		Preload("Provider").
		Where("status = ? AND scheduled_at BETWEEN ? AND ?",
			models.BookingStatusConfirmed, lowerBound, upperBound).
		Find(&upcoming).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, booking := range upcoming {
		message := fmt.Sprintf("Your %s booking starts at %s.",
			booking.Service, booking.ScheduledAt.Format(time.Kitchen))
		data := map[string]any{"booking_id": booking.ID.String()}

		var notes [2]*models.Notification
		err := database.Transaction(func(tx *gorm.DB) error {
			var err error
			if notes[0], err = notifyTx(tx, booking.CustomerID, "Upcoming booking", message,
				models.NotificationTypeReminder, data); err != nil {
				return err
			}
			notes[1], err = notifyTx(tx, booking.Provider.UserID, "Upcoming booking", message,
				models.NotificationTypeReminder, data)
			return err
		})
		if err != nil {
			return sent, err
		}
		for _, n := range notes {
			pushNotification(n)
		}
		sent++
	}
	return sent, nil
}
