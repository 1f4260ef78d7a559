package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Provider is the service-provider profile linked 1:1 to a User.
// Rating and TotalReviews are derived columns: they are written only by the
// rating recomputation in services and must always equal the mean/count of
// the current review set.
type Provider struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;unique" json:"user_id"`
	Category string    `gorm:"size:50" json:"category"`
	Location string    `gorm:"size:200" json:"location"`
	Bio      *string   `gorm:"type:text" json:"bio"`

	HourlyRate float64        `gorm:"type:numeric(10,2);default:0.00" json:"hourly_rate"`
	PhotoURL   *string        `gorm:"size:255" json:"photo_url"`
	Services   datatypes.JSON `json:"services"`

	Rating       float64 `gorm:"default:0" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
