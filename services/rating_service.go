package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/database"
	"github.com/jkimani5/fundi_connect/models"
	"github.com/jkimani5/fundi_connect/utils"
)

// RecomputeProviderRating rewrites the provider's cached rating and
// total_reviews columns from the full current review set. It must run inside
// the same transaction as the review write that triggered it: the provider
// row is locked first, so two concurrent review mutations for the same
// provider serialize and neither aggregate can silently drop the other's
// contribution. The mean is always recomputed from scratch, never patched
// incrementally.
func RecomputeProviderRating(tx *gorm.DB, providerID uuid.UUID) error {
	var provider models.Provider
	if err := database.LockForUpdate(tx).First(&provider, "id = ?", providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("provider not found")
		}
		return err
	}

	var agg struct {
		Total int64
		Avg   float64
	}
	err := tx.Model(&models.Review{}).
		Where("provider_id = ?", providerID).
		Select("count(*) as total, coalesce(avg(rating), 0) as avg").
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Provider{}).
		Where("id = ?", providerID).
		Updates(map[string]any{
			"rating":        agg.Avg,
			"total_reviews": agg.Total,
		}).Error
}

// ReconcileProviderRatings recomputes every provider's aggregate and reports
// how many rows had drifted from the review set. The cached columns are
// derived state; this keeps them reproducible even if a past bug or manual
// edit corrupted them.
func ReconcileProviderRatings() (int, error) {
	var providerIDs []uuid.UUID
	if err := database.DB.Model(&models.Provider{}).Pluck("id", &providerIDs).Error; err != nil {
		return 0, err
	}

	repaired := 0
	for _, id := range providerIDs {
		var before models.Provider
		if err := database.DB.Select("rating", "total_reviews").First(&before, "id = ?", id).Error; err != nil {
			return repaired, err
		}
		err := database.Transaction(func(tx *gorm.DB) error {
			return RecomputeProviderRating(tx, id)
		})
		if err != nil {
			return repaired, err
		}
		var after models.Provider
		if err := database.DB.Select("rating", "total_reviews").First(&after, "id = ?", id).Error; err != nil {
			return repaired, err
		}
		if before.Rating != after.Rating || before.TotalReviews != after.TotalReviews {
			repaired++
			utils.GetLogger().Warn("repaired drifted provider rating",
				zap.String("provider_id", id.String()),
				zap.Float64("old_rating", before.Rating),
				zap.Float64("new_rating", after.Rating),
				zap.Int("old_total", before.TotalReviews),
				zap.Int("new_total", after.TotalReviews))
		}
	}
	return repaired, nil
}
