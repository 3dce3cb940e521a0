package delivery

import (
	"errors"
	"net/http"

	"tarot-backend/internal/notification/domain"
	"tarot-backend/internal/notification/usecase"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles WhatsApp subscription requests
type SubscriptionHandler struct {
	subscriptionUsecase usecase.SubscriptionUsecase
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionUsecase usecase.SubscriptionUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase}
}

// Subscribe creates or updates the user's daily card subscription
// POST /api/subscriptions/whatsapp
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req usecase.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.subscriptionUsecase.Subscribe(c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// GetSubscription returns the user's subscription
// GET /api/subscriptions/whatsapp
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sub, err := h.subscriptionUsecase.GetSubscription(c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Unsubscribe stops daily deliveries
// DELETE /api/subscriptions/whatsapp
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	if err := h.subscriptionUsecase.Unsubscribe(c.GetString("userID")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSubscription):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSubscriptionMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
