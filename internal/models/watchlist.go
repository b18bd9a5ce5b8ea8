package models

import "time"

// Watchlist represents a named set of tracked stock symbols owned by one user.
type Watchlist struct {
	Base
	UserID  string            `gorm:"type:uuid;not null;index" json:"user_id"`
	Name    string            `gorm:"not null" json:"name"`
	Symbols []WatchlistSymbol `gorm:"foreignKey:WatchlistID;constraint:OnDelete:CASCADE" json:"symbols,omitempty"`
	User    User              `gorm:"foreignKey:UserID" json:"-"`
}

// SymbolList returns the watchlist's symbols in stable insertion order.
func (w *Watchlist) SymbolList() []string {
	out := make([]string, len(w.Symbols))
	for i, s := range w.Symbols {
		out[i] = s.Symbol
	}
	return out
}

// WatchlistSymbol is a single symbol membership row. The unique index on
// (watchlist_id, symbol) enforces set semantics; Position keeps insertion
// order stable so listings are deterministic. Membership rows are hard
// deleted so a removed symbol can be re-added under the unique index.
type WatchlistSymbol struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CreatedAt   time.Time `json:"-"`
	WatchlistID string    `gorm:"type:uuid;not null;uniqueIndex:idx_watchlist_symbol" json:"-"`
	Symbol      string    `gorm:"size:12;not null;uniqueIndex:idx_watchlist_symbol;index" json:"symbol"`
	Position    int       `gorm:"not null" json:"position"`
}
