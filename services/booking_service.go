package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/database"
	"github.com/jkimani5/fundi_connect/models"
)

type CreateBookingInput struct {
	CustomerID  uuid.UUID
	ProviderID  uuid.UUID
	Service     string
	Description string
	Location    string
	ScheduledAt time.Time
	Notes       string
	Cost        float64
}

// transitionGraph maps every legal status edge to the role that may drive it.
// An empty role means either party to the booking may perform the move.
var transitionGraph = map[models.BookingStatus]map[models.BookingStatus]string{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed: models.RoleProvider,
		models.BookingStatusCancelled: "",
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusInProgress: models.RoleProvider,
		models.BookingStatusCancelled:  "",
	},
	models.BookingStatusInProgress: {
		models.BookingStatusCompleted: models.RoleProvider,
		models.BookingStatusCancelled: "",
	},
}

// CreateBooking opens a new booking in the pending state against an active
// provider and notifies the provider.
func CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	if in.Cost < 0 {
		return nil, apperrors.Validation("cost cannot be negative")
	}
	if in.Service == "" {
		return nil, apperrors.Validation("service is required")
	}

	var booking models.Booking
	var note *models.Notification
	err := database.Transaction(func(tx *gorm.DB) error {
		var provider models.Provider
		if err := tx.First(&provider, "id = ?", in.ProviderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("provider not found")
			}
			return err
		}
		if !provider.IsActive {
			return apperrors.NotFound("provider is no longer active")
		}

		cost := in.Cost
		if cost == 0 {
			cost = provider.HourlyRate
		}

		booking = models.Booking{
			CustomerID:  in.CustomerID,
			ProviderID:  provider.ID,
			Service:     in.Service,
			Description: in.Description,
			Location:    in.Location,
			ScheduledAt: in.ScheduledAt,
			Notes:       in.Notes,
			Status:      models.BookingStatusPending,
			Cost:        cost,
			IsPaid:      false,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		var err error
		note, err = notifyTx(tx, provider.UserID,
			"New booking request",
			fmt.Sprintf("You have a new %s booking request for %s.", in.Service, in.ScheduledAt.Format("Jan 2 15:04")),
			models.NotificationTypeBookingRequest,
			map[string]any{"booking_id": booking.ID.String()})
		return err
	})
	if err != nil {
		return nil, err
	}

	pushNotification(note)
	return &booking, nil
}

// TransitionBooking applies one status move on a booking on behalf of an
// actor, identified by id and role rather than by scattered current-user
// checks. The booking row is locked for the duration of the transaction and
// the status update carries an optimistic WHERE on the source status, so of
// two racing transitions from the same state exactly one commits.
func TransitionBooking(bookingID, actorID uuid.UUID, actorRole string, next models.BookingStatus) (*models.Booking, error) {
	if _, ok := models.ParseBookingStatus(string(next)); !ok {
		return nil, apperrors.Validation("unknown booking status %q", string(next))
	}

	var booking models.Booking
	var note *models.Notification
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := database.LockForUpdate(tx).First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking not found")
			}
			return err
		}

		var provider models.Provider
		if err := tx.First(&provider, "id = ?", booking.ProviderID).Error; err != nil {
			return err
		}

		isCustomer := actorID == booking.CustomerID && actorRole == models.RoleCustomer
		isProvider := actorID == provider.UserID && actorRole == models.RoleProvider
		if !isCustomer && !isProvider {
			return apperrors.Authorization("you are not a party to this booking")
		}

		if booking.Status.Terminal() {
			return apperrors.Conflict("booking is already %s", booking.Status)
		}
		if next == booking.Status {
			return apperrors.Conflict("booking is already %s", next)
		}

		requiredRole, ok := transitionGraph[booking.Status][next]
		if !ok {
			return apperrors.Validation("cannot move booking from %s to %s", booking.Status, next)
		}
		if requiredRole == models.RoleProvider && !isProvider {
			return apperrors.Authorization("only the provider may mark a booking %s", next)
		}

		now := time.Now()
		updates := map[string]any{
			"status":     next,
			"updated_at": now,
		}
		if next == models.BookingStatusCompleted {
			updates["completed_at"] = now
		}
		if next == models.BookingStatusCancelled {
			updates["cancelled_at"] = now
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return apperrors.Conflict("booking was modified concurrently, please retry")
		}

		from := booking.Status
		booking.Status = next
		booking.UpdatedAt = now
		if next == models.BookingStatusCompleted {
			booking.CompletedAt = &now
		}
		if next == models.BookingStatusCancelled {
			booking.CancelledAt = &now
		}

		counterparty := provider.UserID
		if isProvider {
			counterparty = booking.CustomerID
		}
		var err error
		note, err = notifyTx(tx, counterparty,
			"Booking "+string(next),
			fmt.Sprintf("Your %s booking moved from %s to %s.", booking.Service, from, next),
			models.NotificationTypeBookingStatus,
			map[string]any{"booking_id": booking.ID.String(), "status": string(next)})
		return err
	})
	if err != nil {
		return nil, err
	}

	pushNotification(note)
	return &booking, nil
}

func GetBooking(bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

// ListCustomerBookings returns the customer's bookings, newest first.
func ListCustomerBookings(customerID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := database.DB.
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

// ListProviderBookings returns a provider's bookings, optionally filtered by
// status.
func ListProviderBookings(providerID uuid.UUID, status string) ([]models.Booking, error) {
	q := database.DB.Where("provider_id = ?", providerID)
	if status != "" {
		parsed, ok := models.ParseBookingStatus(status)
		if !ok {
			return nil, apperrors.Validation("unknown booking status %q", status)
		}
		q = q.Where("status = ?", parsed)
	}
	var bookings []models.Booking
	err := q.Order("created_at desc").Find(&bookings).Error
	return bookings, err
}
