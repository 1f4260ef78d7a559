package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/models"
)

func TestCreateReviewUpdatesProviderAggregate(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer)
	provider := seedProvider(t, db, 5000)
	booking := seedBooking(t, db, customer.ID, provider, models.BookingStatusCompleted, 5000)

	review, err := CreateReview(booking.ID, customer.ID, 4, "great work, on time")
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.Rating != 4 {
		t.Errorf("rating = %d, want 4", review.Rating)
	}

	got := reloadProvider(t, db, provider.ID)
	if got.Rating != 4.0 {
		t.Errorf("provider rating = %v, want 4.0", got.Rating)
	}
	if got.TotalReviews != 1 {
		t.Errorf("total_reviews = %d, want 1", got.TotalReviews)
	}

	// One review per booking.
	_, err = CreateReview(booking.ID, customer.ID, 5, "changed my mind")
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("duplicate review err = %v, want conflict", err)
	}
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer)
	provider := seedProvider(t, db, 1000)

	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusInProgress,
		models.BookingStatusCancelled,
	} {
		booking := seedBooking(t, db, customer.ID, provider, status, 1000)
		_, err := CreateReview(booking.ID, customer.ID, 5, "")
		if apperrors.KindOf(err) != apperrors.KindValidation {
			t.Errorf("review on %s booking: err = %v, want validation", status, err)
		}
	}
}

func TestCreateReviewOnlyBookingCustomer(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer)
	other := seedUser(t, db, models.RoleCustomer)
	provider := seedProvider(t, db, 1000)
	booking := seedBooking(t, db, customer.ID, provider, models.BookingStatusCompleted, 1000)

	_, err := CreateReview(booking.ID, other.ID, 5, "")
	if apperrors.KindOf(err) != apperrors.KindAuthorization {
		t.Fatalf("err = %v, want authorization", err)
	}
}

func TestCreateReviewRatingRange(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer)
	provider := seedProvider(t, db, 1000)
	booking := seedBooking(t, db, customer.ID, provider, models.BookingStatusCompleted, 1000)

	for _, rating := range []int{0, 6, -1} {
		_, err := CreateReview(booking.ID, customer.ID, rating, "")
		if apperrors.KindOf(err) != apperrors.KindValidation {
			t.Errorf("rating %d: err = %v, want validation", rating, err)
		}
	}
}

func TestCreateReviewUnknownBooking(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer)

	_, err := CreateReview(uuid.New(), customer.ID, 4, "")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestDeleteReviewRecomputesAggregate(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)

	seedCompletedBookingWithReview(t, db, provider, 5)
	middle := seedCompletedBookingWithReview(t, db, provider, 3)
	seedCompletedBookingWithReview(t, db, provider, 4)

	got := reloadProvider(t, db, provider.ID)
	if got.Rating != 4.0 || got.TotalReviews != 3 {
		t.Fatalf("aggregate = %v/%d, want 4.0/3", got.Rating, got.TotalReviews)
	}

	if err := DeleteReview(middle.ID, middle.CustomerID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}

	got = reloadProvider(t, db, provider.ID)
	if got.Rating != 4.5 {
		t.Errorf("rating after delete = %v, want 4.5", got.Rating)
	}
	if got.TotalReviews != 2 {
		t.Errorf("total_reviews after delete = %d, want 2", got.TotalReviews)
	}
}

func TestDeleteReviewOnlyAuthor(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)
	review := seedCompletedBookingWithReview(t, db, provider, 4)
	other := seedUser(t, db, models.RoleCustomer)

	if err := DeleteReview(review.ID, other.ID); apperrors.KindOf(err) != apperrors.KindAuthorization {
		t.Fatalf("err = %v, want authorization", err)
	}
}

func TestUpdateReviewRecomputesAggregate(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)
	review := seedCompletedBookingWithReview(t, db, provider, 2)

	newRating := 5
	updated, err := UpdateReview(review.ID, review.CustomerID, UpdateReviewInput{Rating: &newRating})
	if err != nil {
		t.Fatalf("UpdateReview: %v", err)
	}
	if updated.Rating != 5 {
		t.Errorf("rating = %d, want 5", updated.Rating)
	}

	got := reloadProvider(t, db, provider.ID)
	if got.Rating != 5.0 {
		t.Errorf("provider rating = %v, want 5.0", got.Rating)
	}
}

func TestRespondToReview(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)
	review := seedCompletedBookingWithReview(t, db, provider, 4)

	responded, err := RespondToReview(review.ID, provider.UserID, "thank you, karibu tena")
	if err != nil {
		t.Fatalf("RespondToReview: %v", err)
	}
	if responded.ProviderResponse == nil || *responded.ProviderResponse != "thank you, karibu tena" {
		t.Errorf("response not stored: %+v", responded.ProviderResponse)
	}
	if responded.RespondedAt == nil {
		t.Error("responded_at must be stamped")
	}

	// One response per review.
	_, err = RespondToReview(review.ID, provider.UserID, "again")
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Errorf("second response err = %v, want conflict", err)
	}
}

func TestRespondToReviewWrongProvider(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)
	review := seedCompletedBookingWithReview(t, db, provider, 4)
	impostor := seedProvider(t, db, 1000)

	_, err := RespondToReview(review.ID, impostor.UserID, "hello")
	if apperrors.KindOf(err) != apperrors.KindAuthorization {
		t.Fatalf("err = %v, want authorization", err)
	}
}

func TestListProviderReviews(t *testing.T) {
	db := setupTestDB(t)
	provider := seedProvider(t, db, 1000)
	seedCompletedBookingWithReview(t, db, provider, 5)
	seedCompletedBookingWithReview(t, db, provider, 3)

	reviews, err := ListProviderReviews(provider.ID)
	if err != nil {
		t.Fatalf("ListProviderReviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Errorf("reviews = %d, want 2", len(reviews))
	}
}
