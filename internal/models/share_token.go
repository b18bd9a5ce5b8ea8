package models

import "time"

// ShareToken binds a short-lived numeric code to a watchlist. The code is the
// primary key: a colliding issue overwrites the prior binding, which is
// acceptable because codes are TTL-bound and single-purpose. Expired rows are
// never deleted eagerly; Resolve checks expiry on read.
type ShareToken struct {
	Code        string    `gorm:"size:6;primaryKey" json:"-"`
	WatchlistID string    `gorm:"type:uuid;not null" json:"watchlist_id"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *ShareToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
