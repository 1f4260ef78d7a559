package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID  uuid.UUID `gorm:"not null;unique" json:"booking_id"`
	ProviderID uuid.UUID `gorm:"not null" json:"provider_id"`
	CustomerID uuid.UUID `gorm:"not null" json:"customer_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	ProviderResponse *string    `gorm:"type:text" json:"provider_response,omitempty"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`

	Booking  Booking  `gorm:"foreignkey:BookingID" json:"-"`
	Provider Provider `gorm:"foreignkey:ProviderID" json:"-"`
	Customer User     `gorm:"foreignkey:CustomerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
