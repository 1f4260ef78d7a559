package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ParseBookingStatus maps a raw string onto the status enum.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerID uuid.UUID `gorm:"not null" json:"customer_id"`
	ProviderID uuid.UUID `gorm:"not null" json:"provider_id"`

	Service     string    `gorm:"size:100;not null" json:"service"`
	Description string    `gorm:"size:500" json:"description"`
	Location    string    `gorm:"size:200" json:"location"`
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`
	Notes       string    `gorm:"type:text" json:"notes"`

	Status BookingStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Cost   float64       `gorm:"type:numeric(10,2);not null" json:"cost"`
	IsPaid bool          `gorm:"not null;default:false" json:"is_paid"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Customer User     `gorm:"foreignkey:CustomerID" json:"-"`
	Provider Provider `gorm:"foreignkey:ProviderID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
