package services

import (
	"gorm.io/gorm"

	"stocksentry/internal/logger"
	"stocksentry/internal/models"
)

// alertLedgerService handles alert event recording.
type alertLedgerService struct {
	db *gorm.DB
}

// NewAlertLedgerService creates a new AlertLedgerServicer.
func NewAlertLedgerService(db *gorm.DB) AlertLedgerServicer {
	return &alertLedgerService{db: db}
}

// Record appends one alert event. Errors are logged but never propagate:
// the notifications for this event have already been attempted, and losing
// an audit row is a lesser failure than reporting the whole alert as failed.
func (s *alertLedgerService) Record(symbol, message string) {
	event := &models.AlertEvent{
		Symbol:  symbol,
		Message: message,
	}

	if err := s.db.Create(event).Error; err != nil {
		logger.Get().Errorw("failed to record alert event",
			"error", err,
			"symbol", symbol,
		)
	}
}
