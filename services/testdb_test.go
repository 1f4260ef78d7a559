package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jkimani5/fundi_connect/database"
	"github.com/jkimani5/fundi_connect/models"
)

// setupTestDB wires the package-level database handle to a fresh in-memory
// sqlite database with a sqlite-friendly rendition of the schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			location TEXT,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'customer',
			is_active NUMERIC DEFAULT true,
			is_verified NUMERIC DEFAULT false,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE providers (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			category TEXT,
			location TEXT,
			bio TEXT,
			hourly_rate NUMERIC DEFAULT 0,
			photo_url TEXT,
			services TEXT,
			rating NUMERIC DEFAULT 0,
			total_reviews INTEGER DEFAULT 0,
			is_active NUMERIC DEFAULT true,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			provider_id TEXT NOT NULL,
			service TEXT NOT NULL,
			description TEXT,
			location TEXT,
			scheduled_at DATETIME NOT NULL,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			cost NUMERIC NOT NULL,
			is_paid NUMERIC NOT NULL DEFAULT false,
			completed_at DATETIME,
			cancelled_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE payments (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL UNIQUE,
			amount NUMERIC NOT NULL,
			method TEXT NOT NULL,
			details TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE reviews (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL UNIQUE,
			provider_id TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT,
			provider_response TEXT,
			responded_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT,
			data TEXT,
			is_read NUMERIC DEFAULT false,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	database.DB = db
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		FullName: "Test " + role,
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedProvider(t *testing.T, db *gorm.DB, hourlyRate float64) *models.Provider {
	t.Helper()
	user := seedUser(t, db, models.RoleProvider)
	provider := &models.Provider{
		UserID:     user.ID,
		Category:   "plumbing",
		HourlyRate: hourlyRate,
		IsActive:   true,
	}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	return provider
}

func seedBooking(t *testing.T, db *gorm.DB, customerID uuid.UUID, provider *models.Provider, status models.BookingStatus, cost float64) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		CustomerID:  customerID,
		ProviderID:  provider.ID,
		Service:     "pipe repair",
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Status:      status,
		Cost:        cost,
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}

func seedCompletedBookingWithReview(t *testing.T, db *gorm.DB, provider *models.Provider, rating int) *models.Review {
	t.Helper()
	customer := seedUser(t, db, models.RoleCustomer)
	booking := seedBooking(t, db, customer.ID, provider, models.BookingStatusCompleted, 100)
	review, err := CreateReview(booking.ID, customer.ID, rating, "solid work")
	if err != nil {
		t.Fatalf("seed review: %v", err)
	}
	return review
}

func reloadProvider(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Provider {
	t.Helper()
	var provider models.Provider
	if err := db.First(&provider, "id = ?", id).Error; err != nil {
		t.Fatalf("reload provider: %v", err)
	}
	return &provider
}

func reloadBooking(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Booking {
	t.Helper()
	var booking models.Booking
	if err := db.First(&booking, "id = ?", id).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	return &booking
}
