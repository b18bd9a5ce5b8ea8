package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"stocksentry/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique name, email, and phone number.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithContacts(t, db,
		fmt.Sprintf("user%d@test.com", n),
		fmt.Sprintf("+1555000%04d", n),
	)
}

// CreateTestUserWithContacts creates a user with the given email and phone
// number; either may be empty to make that channel ineligible.
func CreateTestUserWithContacts(t *testing.T, db *gorm.DB, email, phoneNumber string) *models.User {
	t.Helper()

	user := &models.User{
		Name:        fmt.Sprintf("Test User %d", nextID()),
		Email:       email,
		PhoneNumber: phoneNumber,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWatchlist creates a watchlist with the given symbols for a user.
func CreateTestWatchlist(t *testing.T, db *gorm.DB, userID string, symbols ...string) *models.Watchlist {
	t.Helper()

	watchlist := &models.Watchlist{
		UserID: userID,
		Name:   fmt.Sprintf("Watchlist %d", nextID()),
	}
	for i, sym := range symbols {
		watchlist.Symbols = append(watchlist.Symbols, models.WatchlistSymbol{
			Symbol:   sym,
			Position: i,
		})
	}
	if err := db.Create(watchlist).Error; err != nil {
		t.Fatalf("failed to create test watchlist: %v", err)
	}
	return watchlist
}
