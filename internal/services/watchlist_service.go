package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "stocksentry/internal/errors"
	"stocksentry/internal/models"
)

// watchlistService handles watchlist-related business logic.
type watchlistService struct {
	db *gorm.DB
}

// NewWatchlistService creates a new WatchlistServicer.
func NewWatchlistService(db *gorm.DB) WatchlistServicer {
	return &watchlistService{db: db}
}

// normalizeSymbols uppercases, trims, and de-duplicates symbols while
// preserving first-seen order.
func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}

// CreateWatchlist creates a watchlist with the given symbols for a user.
func (s *watchlistService) CreateWatchlist(userID, name string, symbols []string) (*models.Watchlist, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}

	var owner models.User
	if err := s.db.First(&owner, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	watchlist := &models.Watchlist{
		UserID: userID,
		Name:   name,
	}
	for i, sym := range normalizeSymbols(symbols) {
		watchlist.Symbols = append(watchlist.Symbols, models.WatchlistSymbol{
			Symbol:   sym,
			Position: i,
		})
	}

	if err := s.db.Create(watchlist).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return watchlist, nil
}

// GetUserWatchlists returns all watchlists owned by a user, symbols in
// insertion order.
func (s *watchlistService) GetUserWatchlists(userID string) ([]models.Watchlist, error) {
	var watchlists []models.Watchlist
	err := s.db.
		Preload("Symbols", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&watchlists).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return watchlists, nil
}

// GetWatchlistByID retrieves one watchlist with its symbols.
func (s *watchlistService) GetWatchlistByID(watchlistID string) (*models.Watchlist, error) {
	var watchlist models.Watchlist
	err := s.db.
		Preload("Symbols", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&watchlist, "id = ?", watchlistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWatchlistNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &watchlist, nil
}

// DeleteWatchlist removes a watchlist and all of its symbol rows.
func (s *watchlistService) DeleteWatchlist(watchlistID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var watchlist models.Watchlist
		if err := tx.First(&watchlist, "id = ?", watchlistID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWatchlistNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("watchlist_id = ?", watchlistID).Delete(&models.WatchlistSymbol{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&watchlist).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AddSymbols merges new symbols into a watchlist, skipping ones already
// tracked and appending the rest after the current last position.
func (s *watchlistService) AddSymbols(watchlistID string, symbols []string) (*models.Watchlist, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var watchlist models.Watchlist
		if err := tx.Preload("Symbols").First(&watchlist, "id = ?", watchlistID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWatchlistNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		existing := make(map[string]bool, len(watchlist.Symbols))
		next := 0
		for _, row := range watchlist.Symbols {
			existing[row.Symbol] = true
			if row.Position >= next {
				next = row.Position + 1
			}
		}

		for _, sym := range normalizeSymbols(symbols) {
			if existing[sym] {
				continue
			}
			row := models.WatchlistSymbol{
				WatchlistID: watchlistID,
				Symbol:      sym,
				Position:    next,
			}
			if err := tx.Create(&row).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			next++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetWatchlistByID(watchlistID)
}

// RemoveSymbol drops one symbol from a watchlist.
func (s *watchlistService) RemoveSymbol(watchlistID, symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if _, err := s.GetWatchlistByID(watchlistID); err != nil {
		return err
	}

	res := s.db.Where("watchlist_id = ? AND symbol = ?", watchlistID, symbol).Delete(&models.WatchlistSymbol{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrSymbolNotTracked
	}
	return nil
}

// SubscribersOf returns the distinct users whose watchlists (any of them)
// contain the symbol.
func (s *watchlistService) SubscribersOf(symbol string) ([]models.User, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	var users []models.User
	err := s.db.
		Distinct("users.*").
		Joins("JOIN watchlists ON watchlists.user_id = users.id AND watchlists.deleted_at IS NULL").
		Joins("JOIN watchlist_symbols ON watchlist_symbols.watchlist_id = watchlists.id").
		Where("watchlist_symbols.symbol = ?", symbol).
		Order("users.created_at").
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}
