package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stocksentry/internal/errors"
	"stocksentry/internal/services"
)

// UserHandler handles user-related requests.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents the request to register a user.
type CreateUserRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,e164"`
}

// CreateUser registers a new user
// @Summary     Create user
// @Description Register a user; email and phone number are optional and gate which alert channels the user receives
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "User details"
// @Success     201 {object} object "Created user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email, req.PhoneNumber)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetUser retrieves a user by ID
// @Summary     Get user
// @Description Get a single user by ID
// @Tags        users
// @Produce     json
// @Param       id path string true "User ID"
// @Success     200 {object} object "User"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
