package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/database"
	"github.com/jkimani5/fundi_connect/models"
)

// RecordPayment attaches a successful payment to a booking and flips its
// paid flag in the same transaction. Gateway acceptance is simulated
// deterministically: a payment that passes validation is recorded as
// success, there is no external call. The unique booking_id column and the
// optimistic is_paid update both back the at-most-one-payment invariant.
func RecordPayment(bookingID uuid.UUID, method string, amount float64, details map[string]any) (*models.Payment, error) {
	if method == "" {
		return nil, apperrors.Validation("payment method is required")
	}

	var payment models.Payment
	var note *models.Notification
	err := database.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := database.LockForUpdate(tx).First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking not found")
			}
			return err
		}

		if booking.Status == models.BookingStatusCancelled {
			return apperrors.Validation("cannot pay a cancelled booking")
		}
		if booking.IsPaid {
			return apperrors.Conflict("booking is already paid")
		}

		var existing int64
		err := tx.Model(&models.Payment{}).
			Where("booking_id = ? AND status = ?", booking.ID, models.PaymentStatusSuccess).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.Conflict("a successful payment already exists for this booking")
		}

		if amount != booking.Cost {
			return apperrors.Validation("amount %.2f does not match booking cost %.2f", amount, booking.Cost)
		}

		payment = models.Payment{
			BookingID: booking.ID,
			Amount:    amount,
			Method:    method,
			Status:    models.PaymentStatusSuccess,
		}
		if details != nil {
			raw, err := json.Marshal(details)
			if err != nil {
				return err
			}
			payment.Details = datatypes.JSON(raw)
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND is_paid = ?", booking.ID, false).
			Update("is_paid", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return apperrors.Conflict("booking was paid concurrently")
		}

		var provider models.Provider
		if err := tx.First(&provider, "id = ?", booking.ProviderID).Error; err != nil {
			return err
		}
		note, err = notifyTx(tx, provider.UserID,
			"Payment received",
			fmt.Sprintf("Payment of %.2f received for your %s booking.", amount, booking.Service),
			models.NotificationTypePayment,
			map[string]any{"booking_id": booking.ID.String(), "payment_id": payment.ID.String()})
		return err
	})
	if err != nil {
		return nil, err
	}

	pushNotification(note)
	return &payment, nil
}

func GetPayment(paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found")
		}
		return nil, err
	}
	return &payment, nil
}
