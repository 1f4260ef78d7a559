package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/database"
	"github.com/jkimani5/fundi_connect/models"
)

// EnsureProviderProfile returns the user's provider profile, creating it
// lazily the first time a user with the provider role needs one.
func EnsureProviderProfile(userID uuid.UUID) (*models.Provider, error) {
	var provider models.Provider
	err := database.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user not found")
			}
			return err
		}
		if user.Role != models.RoleProvider {
			return apperrors.Authorization("only users with the provider role have a provider profile")
		}

		err := tx.First(&provider, "user_id = ?", userID).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		provider = models.Provider{UserID: userID, IsActive: true}
		return tx.Create(&provider).Error
	})
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func GetProvider(providerID uuid.UUID) (*models.Provider, error) {
	var provider models.Provider
	if err := database.DB.First(&provider, "id = ?", providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("provider not found")
		}
		return nil, err
	}
	return &provider, nil
}

type UpdateProviderInput struct {
	Category   *string
	Location   *string
	Bio        *string
	HourlyRate *float64
	PhotoURL   *string
	Services   []string
	IsActive   *bool
}

// UpdateProviderProfile updates profile fields on the caller's own provider
// record. Rating and total_reviews are derived columns and deliberately not
// reachable from here.
func UpdateProviderProfile(userID uuid.UUID, in UpdateProviderInput) (*models.Provider, error) {
	if in.HourlyRate != nil && *in.HourlyRate < 0 {
		return nil, apperrors.Validation("hourly rate cannot be negative")
	}

	var provider models.Provider
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&provider, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("provider profile not found")
			}
			return err
		}

		updates := map[string]any{}
		if in.Category != nil {
			updates["category"] = *in.Category
		}
		if in.Location != nil {
			updates["location"] = *in.Location
		}
		if in.Bio != nil {
			updates["bio"] = *in.Bio
		}
		if in.HourlyRate != nil {
			updates["hourly_rate"] = *in.HourlyRate
		}
		if in.PhotoURL != nil {
			updates["photo_url"] = *in.PhotoURL
		}
		if in.Services != nil {
			raw, err := json.Marshal(in.Services)
			if err != nil {
				return err
			}
			updates["services"] = datatypes.JSON(raw)
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Provider{}).Where("id = ?", provider.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&provider, "id = ?", provider.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

type ProviderStats struct {
	TotalBookings      int64   `json:"total_bookings"`
	PendingBookings    int64   `json:"pending_bookings"`
	ConfirmedBookings  int64   `json:"confirmed_bookings"`
	InProgressBookings int64   `json:"in_progress_bookings"`
	CompletedBookings  int64   `json:"completed_bookings"`
	CancelledBookings  int64   `json:"cancelled_bookings"`
	TotalEarnings      float64 `json:"total_earnings"`
}

// GetProviderStats summarizes a provider's bookings and completed earnings.
func GetProviderStats(providerID uuid.UUID) (*ProviderStats, error) {
	stats := &ProviderStats{}

	type row struct {
		Status models.BookingStatus
		N      int64
		Sum    float64
	}
	var rows []row
	err := database.DB.Model(&models.Booking{}).
		Where("provider_id = ?", providerID).
		Select("status, count(*) as n, coalesce(sum(cost), 0) as sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		stats.TotalBookings += r.N
		switch r.Status {
		case models.BookingStatusPending:
			stats.PendingBookings = r.N
		case models.BookingStatusConfirmed:
			stats.ConfirmedBookings = r.N
		case models.BookingStatusInProgress:
			stats.InProgressBookings = r.N
		case models.BookingStatusCompleted:
			stats.CompletedBookings = r.N
			stats.TotalEarnings = r.Sum
		case models.BookingStatusCancelled:
			stats.CancelledBookings = r.N
		}
	}
	return stats, nil
}

type DailyEarnings struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// GetEarningsOverview buckets a provider's completed-booking earnings by day
// over the trailing window.
func GetEarningsOverview(providerID uuid.UUID, days int) ([]DailyEarnings, error) {
	if days <= 0 {
		days = 7
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	var bookings []models.Booking
	err := database.DB.
		Where("provider_id = ? AND status = ? AND scheduled_at BETWEEN ? AND ?",
			providerID, models.BookingStatusCompleted, start, end).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]float64, days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		byDate[d.Format("2006-01-02")] = 0
	}
	for _, b := range bookings {
		byDate[b.ScheduledAt.Format("2006-01-02")] += b.Cost
	}

	overview := make([]DailyEarnings, 0, len(byDate))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		overview = append(overview, DailyEarnings{Date: key, Amount: byDate[key]})
	}
	return overview, nil
}
