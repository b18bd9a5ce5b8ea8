package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "stocksentry/internal/errors"
	"stocksentry/internal/models"
)

const shareCodeSpace = 1000000 // codes are uniform over 000000-999999

// shareTokenService issues and resolves time-limited watchlist share codes.
type shareTokenService struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewShareTokenService creates a new ShareTokenServicer with the given TTL.
func NewShareTokenService(db *gorm.DB, ttl time.Duration) ShareTokenServicer {
	return &shareTokenService{db: db, ttl: ttl, now: time.Now}
}

// generateCode draws a 6-digit code from a uniform distribution. Collisions
// with a live code are not checked: the upsert below overwrites the prior
// binding, acceptable for TTL-bound single-purpose codes.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(shareCodeSpace))
	if err != nil {
		return "", fmt.Errorf("generate share code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue creates a share code bound to the watchlist, valid for the
// configured TTL.
func (s *shareTokenService) Issue(watchlistID string) (string, time.Time, error) {
	code, err := generateCode()
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	token := models.ShareToken{
		Code:        code,
		WatchlistID: watchlistID,
		ExpiresAt:   s.now().Add(s.ttl),
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		UpdateAll: true,
	}).Create(&token).Error
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return code, token.ExpiresAt, nil
}

// Resolve looks up a code and returns the bound watchlist ID. Unknown and
// expired codes are reported identically; expiry is checked lazily on read
// and an expired row is never treated as valid even if still stored.
// Resolution does not consume the token.
func (s *shareTokenService) Resolve(code string) (string, error) {
	var token models.ShareToken
	if err := s.db.First(&token, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrShareCodeInvalid
		}
		return "", apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if token.Expired(s.now()) {
		return "", apperrors.ErrShareCodeInvalid
	}
	return token.WatchlistID, nil
}
