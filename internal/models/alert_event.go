package models

// AlertEvent is one append-only row in the alert ledger. Rows are immutable
// once written; there is no update or delete path.
type AlertEvent struct {
	Base
	Symbol  string `gorm:"size:12;not null;index" json:"symbol"`
	Message string `gorm:"not null" json:"message"`
}
