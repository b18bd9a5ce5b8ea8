package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "stocksentry/internal/errors"
	"stocksentry/internal/feed"
	"stocksentry/internal/notify"
)

// NewsHandler exposes the news feed passthrough and channel test hooks.
type NewsHandler struct {
	feed        feed.Client
	broadcaster notify.Broadcaster
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(feedClient feed.Client, broadcaster notify.Broadcaster) *NewsHandler {
	return &NewsHandler{feed: feedClient, broadcaster: broadcaster}
}

// GetNews fetches current news for a symbol
// @Summary     Get symbol news
// @Description Fetch the current news batch for a symbol from the external feed
// @Tags        news
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} object "News items"
// @Failure     502 {object} ErrorResponse "Feed unavailable"
// @Router      /news/{symbol} [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	items, err := h.feed.FetchNews(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrFeedUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": symbol,
		"items":  items,
	})
}

// TestBroadcast sends a test message to the broadcast channel
// @Summary     Test broadcast channel
// @Description Publish a test alert for a symbol to the broadcast channel
// @Tags        news
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} object "Success message"
// @Failure     502 {object} ErrorResponse "Broadcast failed"
// @Router      /news/test-broadcast/{symbol} [get]
func (h *NewsHandler) TestBroadcast(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	err := h.broadcaster.SendBroadcast(c.Request.Context(), "StockSentry Alert",
		"This is a test notification for "+symbol)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrChannelUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Broadcast sent for " + symbol})
}
