package services

import (
	"time"

	"stocksentry/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, phoneNumber string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AllUserIDs() ([]string, error)
}

// WatchlistServicer defines the contract for watchlist-related business logic.
type WatchlistServicer interface {
	CreateWatchlist(userID, name string, symbols []string) (*models.Watchlist, error)
	GetUserWatchlists(userID string) ([]models.Watchlist, error)
	GetWatchlistByID(watchlistID string) (*models.Watchlist, error)
	DeleteWatchlist(watchlistID string) error
	AddSymbols(watchlistID string, symbols []string) (*models.Watchlist, error)
	RemoveSymbol(watchlistID, symbol string) error
	SubscribersOf(symbol string) ([]models.User, error)
}

// ShareTokenServicer defines the contract for issuing and resolving
// time-limited watchlist share codes.
type ShareTokenServicer interface {
	Issue(watchlistID string) (code string, expiresAt time.Time, err error)
	Resolve(code string) (watchlistID string, err error)
}

// AlertLedgerServicer records alert events for audit. Record never returns an
// error: a lost audit row must not make an already-delivered alert look failed.
type AlertLedgerServicer interface {
	Record(symbol, message string)
}
