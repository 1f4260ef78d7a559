package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/database"
	"github.com/jkimani5/fundi_connect/models"
)

// CreateReview lets the customer of a completed booking leave exactly one
// review, then recomputes the provider's aggregate before returning.
func CreateReview(bookingID, customerID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}

	var review models.Review
	err := database.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking not found")
			}
			return err
		}

		if booking.CustomerID != customerID {
			return apperrors.Authorization("you are not the customer for this booking")
		}
		if booking.Status != models.BookingStatusCompleted {
			return apperrors.Validation("reviews can only be submitted for completed bookings")
		}

		var existing int64
		if err := tx.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.Conflict("a review for this booking has already been submitted")
		}

		review = models.Review{
			BookingID:  booking.ID,
			ProviderID: booking.ProviderID,
			CustomerID: customerID,
			Rating:     rating,
			Comment:    comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		return RecomputeProviderRating(tx, booking.ProviderID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// UpdateReview edits the author's own review and recomputes the provider's
// aggregate in the same transaction.
func UpdateReview(reviewID, customerID uuid.UUID, in UpdateReviewInput) (*models.Review, error) {
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}

	var review models.Review
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("review not found")
			}
			return err
		}
		if review.CustomerID != customerID {
			return apperrors.Authorization("you are not the author of this review")
		}

		updates := map[string]any{}
		if in.Rating != nil {
			updates["rating"] = *in.Rating
			review.Rating = *in.Rating
		}
		if in.Comment != nil {
			updates["comment"] = *in.Comment
			review.Comment = *in.Comment
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Review{}).Where("id = ?", review.ID).Updates(updates).Error; err != nil {
			return err
		}

		return RecomputeProviderRating(tx, review.ProviderID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes the author's own review and recomputes the provider's
// aggregate in the same transaction.
func DeleteReview(reviewID, customerID uuid.UUID) error {
	return database.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("review not found")
			}
			return err
		}
		if review.CustomerID != customerID {
			return apperrors.Authorization("you are not the author of this review")
		}

		if err := tx.Delete(&models.Review{}, "id = ?", review.ID).Error; err != nil {
			return err
		}

		return RecomputeProviderRating(tx, review.ProviderID)
	})
}

// RespondToReview stores the provider's single response on a review. The
// responding user must own the provider profile the review targets.
func RespondToReview(reviewID, providerUserID uuid.UUID, response string) (*models.Review, error) {
	if response == "" {
		return nil, apperrors.Validation("response text is required")
	}

	var review models.Review
	err := database.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("review not found")
			}
			return err
		}

		var provider models.Provider
		if err := tx.First(&provider, "id = ?", review.ProviderID).Error; err != nil {
			return err
		}
		if provider.UserID != providerUserID {
			return apperrors.Authorization("you are not the provider for this review")
		}

		if review.ProviderResponse != nil {
			return apperrors.Conflict("this review already has a response")
		}

		now := time.Now()
		err := tx.Model(&models.Review{}).Where("id = ?", review.ID).Updates(map[string]any{
			"provider_response": response,
			"responded_at":      now,
		}).Error
		if err != nil {
			return err
		}
		review.ProviderResponse = &response
		review.RespondedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListProviderReviews returns a provider's reviews, newest first.
func ListProviderReviews(providerID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := database.DB.
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}
