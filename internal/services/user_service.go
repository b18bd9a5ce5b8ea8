package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "stocksentry/internal/errors"
	"stocksentry/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser creates a user. Email and phone number may be empty; an empty
// contact field simply makes the corresponding alert channel ineligible.
func (s *userService) CreateUser(name, email, phoneNumber string) (*models.User, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}

	user := &models.User{
		Name:        name,
		Email:       email,
		PhoneNumber: phoneNumber,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// AllUserIDs returns the IDs of every registered user. The scheduler drives
// its scan cycle from this enumeration.
func (s *userService) AllUserIDs() ([]string, error) {
	var ids []string
	if err := s.db.Model(&models.User{}).Order("created_at").Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}
