package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tarot-backend/internal/reading/domain"
	"tarot-backend/internal/reading/usecase"
	tarot "tarot-backend/internal/tarot/domain"
)

// ReadingHandler handles interpretation and reading history requests
type ReadingHandler struct {
	interpretUsecase usecase.InterpretUsecase
	historyUsecase   usecase.HistoryUsecase
	authEnabled      bool
}

// NewReadingHandler creates a new ReadingHandler. historyUsecase may be nil
// when no database is configured.
func NewReadingHandler(interpretUsecase usecase.InterpretUsecase, historyUsecase usecase.HistoryUsecase, authEnabled bool) *ReadingHandler {
	return &ReadingHandler{
		interpretUsecase: interpretUsecase,
		historyUsecase:   historyUsecase,
		authEnabled:      authEnabled,
	}
}

// Interpret generates (or returns the cached) interpretation of a spread
// POST /api/interpret
func (h *ReadingHandler) Interpret(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		c.Header("Allow", "POST, OPTIONS")
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	if !h.interpretUsecase.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.ErrNotConfigured.Error()})
		return
	}

	var req domain.InterpretRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	access := usecase.Access{
		Gate: h.authEnabled,
		Tier: tarot.ParseTier(c.GetString("tier")),
	}

	result, err := h.interpretUsecase.Interpret(c.Request.Context(), req, access)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SaveReading stores a reading in the user's history
// POST /api/readings
func (h *ReadingHandler) SaveReading(c *gin.Context) {
	userID := c.GetString("userID")

	var req usecase.SaveReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reading, err := h.historyUsecase.SaveReading(userID, tarot.ParseTier(c.GetString("tier")), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reading)
}

// GetReadings returns the user's saved readings
// GET /api/readings?limit=50&offset=0
func (h *ReadingHandler) GetReadings(c *gin.Context) {
	userID := c.GetString("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	readings, total, err := h.historyUsecase.ListReadings(userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	if readings == nil {
		readings = []*domain.Reading{}
	}

	c.JSON(http.StatusOK, gin.H{
		"readings": readings,
		"total":    total,
	})
}

// GetReadingByID returns a specific reading
// GET /api/readings/:id
func (h *ReadingHandler) GetReadingByID(c *gin.Context) {
	reading, err := h.historyUsecase.GetReading(c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reading)
}

// DeleteReading deletes a reading
// DELETE /api/readings/:id
func (h *ReadingHandler) DeleteReading(c *gin.Context) {
	if err := h.historyUsecase.DeleteReading(c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reading deleted successfully"})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reading not found"})
	case errors.Is(err, domain.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.ErrNotConfigured.Error()})
	case errors.Is(err, domain.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
