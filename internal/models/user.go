package models

// User represents the user model in the database. Email and PhoneNumber are
// optional; their presence decides which alert channels the user can receive.
type User struct {
	Base
	Name        string      `gorm:"not null" json:"name"`
	Email       string      `json:"email,omitempty"`
	PhoneNumber string      `json:"phone_number,omitempty"`
	Watchlists  []Watchlist `gorm:"foreignKey:UserID" json:"watchlists,omitempty"`
}
