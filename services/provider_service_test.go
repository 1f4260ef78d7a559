package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/models"
)

func TestEnsureProviderProfileLazyCreate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleProvider)

	first, err := EnsureProviderProfile(user.ID)
	if err != nil {
		t.Fatalf("EnsureProviderProfile: %v", err)
	}
	if !first.IsActive {
		t.Error("new profile must start active")
	}

	second, err := EnsureProviderProfile(user.ID)
	if err != nil {
		t.Fatalf("second EnsureProviderProfile: %v", err)
	}
	if second.ID != first.ID {
		t.Error("repeat calls must return the same profile, not a new one")
	}
}

func TestEnsureProviderProfileCustomerRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)

	_, err := EnsureProviderProfile(user.ID)
	if apperrors.KindOf(err) != apperrors.KindAuthorization {
		t.Fatalf("err = %v, want authorization", err)
	}
}

func TestUpdateProviderProfile(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)

	rate := 1500.0
	bio := "15 years of plumbing in Nairobi"
	updated, err := UpdateProviderProfile(provider.UserID, UpdateProviderInput{
		HourlyRate: &rate,
		Bio:        &bio,
		Services:   []string{"pipe repair", "sink installation"},
	})
	if err != nil {
		t.Fatalf("UpdateProviderProfile: %v", err)
	}
	if updated.HourlyRate != 1500 {
		t.Errorf("hourly_rate = %v, want 1500", updated.HourlyRate)
	}
	if updated.Bio == nil || *updated.Bio != bio {
		t.Errorf("bio not stored: %+v", updated.Bio)
	}
	if len(updated.Services) == 0 {
		t.Error("services JSON not stored")
	}
}

func TestUpdateProviderProfileNegativeRate(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)

	rate := -5.0
	_, err := UpdateProviderProfile(provider.UserID, UpdateProviderInput{HourlyRate: &rate})
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestUpdateProviderProfileCannotTouchAggregate(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)
	seedCompletedBookingWithReview(t, db, provider, 4)

	rate := 2000.0
	if _, err := UpdateProviderProfile(provider.UserID, UpdateProviderInput{HourlyRate: &rate}); err != nil {
		t.Fatalf("UpdateProviderProfile: %v", err)
	}

	got := reloadProvider(t, db, provider.ID)
	if got.Rating != 4.0 || got.TotalReviews != 1 {
		t.Errorf("aggregate = %v/%d after profile update, want 4.0/1", got.Rating, got.TotalReviews)
	}
}

func TestGetProviderStats(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer)
	provider := seedProvider(t, db, 1000)

	seedBooking(t, db, customer.ID, provider, models.BookingStatusPending, 500)
	seedBooking(t, db, customer.ID, provider, models.BookingStatusCompleted, 1000)
	seedBooking(t, db, customer.ID, provider, models.BookingStatusCompleted, 2500)
	seedBooking(t, db, customer.ID, provider, models.BookingStatusCancelled, 800)

	stats, err := GetProviderStats(provider.ID)
	if err != nil {
		t.Fatalf("GetProviderStats: %v", err)
	}
	if stats.TotalBookings != 4 {
		t.Errorf("total = %d, want 4", stats.TotalBookings)
	}
	if stats.PendingBookings != 1 || stats.CompletedBookings != 2 || stats.CancelledBookings != 1 {
		t.Errorf("per-status counts wrong: %+v", stats)
	}
	if stats.TotalEarnings != 3500 {
		t.Errorf("earnings = %.2f, want 3500 (completed bookings only)", stats.TotalEarnings)
	}
}

func TestGetEarningsOverviewBucketsByDay(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer)
	provider := seedProvider(t, db, 1000)

	yesterday := time.Now().AddDate(0, 0, -1)
	for _, cost := range []float64{1000, 1500} {
		booking := &models.Booking{
			CustomerID:  customer.ID,
			ProviderID:  provider.ID,
			Service:     "pipe repair",
			ScheduledAt: yesterday,
			Status:      models.BookingStatusCompleted,
			Cost:        cost,
		}
		if err := db.Create(booking).Error; err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	overview, err := GetEarningsOverview(provider.ID, 7)
	if err != nil {
		t.Fatalf("GetEarningsOverview: %v", err)
	}
	if len(overview) != 8 {
		t.Fatalf("buckets = %d, want 8 for a 7-day window", len(overview))
	}

	key := yesterday.Format("2006-01-02")
	var got float64
	for _, day := range overview {
		if day.Date == key {
			got = day.Amount
		}
	}
	if got != 2500 {
		t.Errorf("earnings for %s = %.2f, want 2500", key, got)
	}
}

func TestGetProviderNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetProvider(uuid.New())
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("err = %v, want not-found", err)
	}
}
