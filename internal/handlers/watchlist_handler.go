package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stocksentry/internal/errors"
	"stocksentry/internal/logger"
	"stocksentry/internal/notify"
	"stocksentry/internal/services"
)

// WatchlistHandler handles watchlist CRUD and the share flow.
type WatchlistHandler struct {
	watchlistService  services.WatchlistServicer
	shareTokenService services.ShareTokenServicer
	emailSender       notify.EmailSender
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService services.WatchlistServicer, shareTokenService services.ShareTokenServicer, emailSender notify.EmailSender) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService:  watchlistService,
		shareTokenService: shareTokenService,
		emailSender:       emailSender,
	}
}

// CreateWatchlistRequest represents the request to create a watchlist.
type CreateWatchlistRequest struct {
	UserID  string   `json:"user_id" binding:"required,uuid"`
	Name    string   `json:"name" binding:"required,min=1,max=100"`
	Symbols []string `json:"symbols" binding:"omitempty,dive,ticker"`
}

// AddSymbolsRequest represents the request to add symbols to a watchlist.
type AddSymbolsRequest struct {
	Symbols []string `json:"symbols" binding:"required,min=1,dive,ticker"`
}

// ShareRequest represents the request to share a watchlist by email.
type ShareRequest struct {
	WatchlistID    string `json:"watchlist_id" binding:"required,uuid"`
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
}

// resolveShareURI binds the share code path segment.
type resolveShareURI struct {
	Code string `uri:"code" binding:"required,share_code"`
}

// CreateWatchlist creates a watchlist
// @Summary     Create watchlist
// @Description Create a named watchlist with an optional initial symbol set
// @Tags        watchlists
// @Accept      json
// @Produce     json
// @Param       request body CreateWatchlistRequest true "Watchlist details"
// @Success     201 {object} object "Created watchlist"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Owner not found"
// @Router      /watchlists [post]
func (h *WatchlistHandler) CreateWatchlist(c *gin.Context) {
	var req CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	watchlist, err := h.watchlistService.CreateWatchlist(req.UserID, req.Name, req.Symbols)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"watchlist": watchlist})
}

// GetUserWatchlists lists a user's watchlists
// @Summary     List watchlists
// @Description List all watchlists owned by a user
// @Tags        watchlists
// @Produce     json
// @Param       id path string true "User ID"
// @Success     200 {object} object "Watchlists"
// @Router      /users/{id}/watchlists [get]
func (h *WatchlistHandler) GetUserWatchlists(c *gin.Context) {
	watchlists, err := h.watchlistService.GetUserWatchlists(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlists": watchlists})
}

// GetWatchlist retrieves one watchlist
// @Summary     Get watchlist
// @Description Get a single watchlist with its symbols
// @Tags        watchlists
// @Produce     json
// @Param       id path string true "Watchlist ID"
// @Success     200 {object} object "Watchlist"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /watchlists/{id} [get]
func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	watchlist, err := h.watchlistService.GetWatchlistByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": watchlist})
}

// DeleteWatchlist removes a watchlist
// @Summary     Delete watchlist
// @Description Delete a watchlist and all of its symbol associations
// @Tags        watchlists
// @Produce     json
// @Param       id path string true "Watchlist ID"
// @Success     200 {object} object "Success message"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /watchlists/{id} [delete]
func (h *WatchlistHandler) DeleteWatchlist(c *gin.Context) {
	if err := h.watchlistService.DeleteWatchlist(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Watchlist deleted"})
}

// AddSymbols merges symbols into a watchlist
// @Summary     Add symbols
// @Description Add symbols to a watchlist; duplicates are skipped
// @Tags        watchlists
// @Accept      json
// @Produce     json
// @Param       id path string true "Watchlist ID"
// @Param       request body AddSymbolsRequest true "Symbols to add"
// @Success     200 {object} object "Updated watchlist"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /watchlists/{id}/symbols [post]
func (h *WatchlistHandler) AddSymbols(c *gin.Context) {
	var req AddSymbolsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	watchlist, err := h.watchlistService.AddSymbols(c.Param("id"), req.Symbols)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": watchlist})
}

// RemoveSymbol drops one symbol from a watchlist
// @Summary     Remove symbol
// @Description Remove a symbol from a watchlist
// @Tags        watchlists
// @Produce     json
// @Param       id path string true "Watchlist ID"
// @Param       symbol path string true "Symbol"
// @Success     200 {object} object "Success message"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /watchlists/{id}/symbols/{symbol} [delete]
func (h *WatchlistHandler) RemoveSymbol(c *gin.Context) {
	if err := h.watchlistService.RemoveSymbol(c.Param("id"), c.Param("symbol")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Symbol removed"})
}

// ShareWatchlist issues a time-limited share code
// @Summary     Share watchlist
// @Description Issue a 6-digit share code for a watchlist and email it to the recipient
// @Tags        watchlists
// @Accept      json
// @Produce     json
// @Param       request body ShareRequest true "Share details"
// @Success     200 {object} object "Share link and expiry"
// @Failure     404 {object} ErrorResponse "Watchlist not found"
// @Failure     503 {object} ErrorResponse "Store unavailable"
// @Router      /watchlists/share [post]
func (h *WatchlistHandler) ShareWatchlist(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	watchlist, err := h.watchlistService.GetWatchlistByID(req.WatchlistID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	code, expiresAt, err := h.shareTokenService.Issue(watchlist.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The code email is best-effort: the share link in the response stays
	// usable even if the recipient mail bounces at the gateway.
	subject := "StockSentry Watchlist Share Code"
	body := fmt.Sprintf("Your share code for %q is: %s", watchlist.Name, code)
	if err := h.emailSender.SendEmail(context.Background(), req.RecipientEmail, subject, body); err != nil {
		logger.Get().Warnw("share code email failed",
			"recipient", req.RecipientEmail,
			"error", err,
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"share_link": "stocksentry://share/" + code,
		"expires_at": expiresAt,
	})
}

// GetSharedWatchlist resolves a share code
// @Summary     Resolve share code
// @Description Resolve a share code to its watchlist; expired or unknown codes return 404
// @Tags        watchlists
// @Produce     json
// @Param       code path string true "6-digit share code"
// @Success     200 {object} object "Shared watchlist"
// @Failure     404 {object} ErrorResponse "Invalid or expired share code"
// @Failure     503 {object} ErrorResponse "Store unavailable"
// @Router      /watchlists/share/{code} [get]
func (h *WatchlistHandler) GetSharedWatchlist(c *gin.Context) {
	var uri resolveShareURI
	if err := c.ShouldBindUri(&uri); err != nil {
		// A malformed code can never resolve; report it the same way as an
		// unknown one to keep the probe surface uniform.
		respondWithError(c, apperrors.Wrap(apperrors.ErrShareCodeInvalid, err))
		return
	}

	watchlistID, err := h.shareTokenService.Resolve(uri.Code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	watchlist, err := h.watchlistService.GetWatchlistByID(watchlistID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": watchlist})
}
