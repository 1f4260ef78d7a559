package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment records a monetary transaction against exactly one booking.
// The unique BookingID column backs the at-most-one-payment invariant.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"not null;unique" json:"booking_id"`

	Amount  float64        `gorm:"type:numeric(10,2);not null" json:"amount"`
	Method  string         `gorm:"size:20;not null" json:"method"`
	Details datatypes.JSON `json:"details,omitempty"`
	Status  string         `gorm:"size:20;not null;default:'pending'" json:"status"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
