package delivery

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"tarot-backend/internal/daily"

	"github.com/gin-gonic/gin"
)

// DailyHandler serves the deterministic cards of the day
type DailyHandler struct {
	service *daily.Service
}

// NewDailyHandler creates a new DailyHandler
func NewDailyHandler(service *daily.Service) *DailyHandler {
	return &DailyHandler{service: service}
}

// date reads ?date=, writing a 400 when it is malformed
func (h *DailyHandler) date(c *gin.Context) (time.Time, bool) {
	d, err := h.service.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, false
	}
	return d, true
}

// GetDailyCard returns the global card of the day
// GET /api/daily?date=2025-01-01
func (h *DailyHandler) GetDailyCard(c *gin.Context) {
	d, ok := h.date(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date": d.Format(daily.DateLayout),
		"card": h.service.CardOfTheDay(d),
	})
}

// GetTriad returns the three cards of the day
// GET /api/daily/triad?date=2025-01-01
func (h *DailyHandler) GetTriad(c *gin.Context) {
	d, ok := h.date(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  d.Format(daily.DateLayout),
		"cards": h.service.Triad(d),
	})
}

// GetSignCard returns the card of the day for a zodiac sign
// GET /api/daily/zodiac/:sign?date=2025-01-01
func (h *DailyHandler) GetSignCard(c *gin.Context) {
	d, ok := h.date(c)
	if !ok {
		return
	}

	card, sign, err := h.service.SignCard(d, c.Param("sign"))
	if err != nil {
		if errors.Is(err, daily.ErrUnknownSign) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date": d.Format(daily.DateLayout),
		"sign": sign,
		"card": card,
	})
}

// GetSigns returns the zodiac table
// GET /api/zodiac?element=fire
func (h *DailyHandler) GetSigns(c *gin.Context) {
	element := strings.ToLower(c.Query("element"))
	if element == "" {
		c.JSON(http.StatusOK, gin.H{"signs": daily.Signs()})
		return
	}

	signs := daily.SignsByElement(daily.Element(element))
	if len(signs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown element"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signs": signs})
}

// GetSignForDate returns the sign a date falls in
// GET /api/zodiac/for-date?date=2025-01-01
func (h *DailyHandler) GetSignForDate(c *gin.Context) {
	d, ok := h.date(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date": d.Format(daily.DateLayout),
		"sign": daily.SignForDate(d),
	})
}
