package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationTypeBookingRequest = "booking_request"
	NotificationTypeBookingStatus  = "booking_status"
	NotificationTypePayment        = "payment"
	NotificationTypeReminder       = "reminder"
)

type Notification struct {
	ID      uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID      `gorm:"not null;index" json:"user_id"`
	Title   string         `gorm:"size:255;not null" json:"title"`
	Message string         `gorm:"type:text;not null" json:"message"`
	Type    string         `gorm:"size:50" json:"type"`
	Data    datatypes.JSON `json:"data,omitempty"`
	IsRead  bool           `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
