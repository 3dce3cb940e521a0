package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"tarot-backend/internal/content/domain"
	"tarot-backend/internal/content/usecase"
	tarot "tarot-backend/internal/tarot/domain"

	"github.com/gin-gonic/gin"
)

// ContentHandler handles card content generation, import and semantic search
type ContentHandler struct {
	contentUsecase usecase.ContentUsecase
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contentUsecase usecase.ContentUsecase) *ContentHandler {
	return &ContentHandler{contentUsecase: contentUsecase}
}

// GenerateCard generates and stores the meaning of one card
// POST /api/admin/cards/:id/generate?locale=en
func (h *ContentHandler) GenerateCard(c *gin.Context) {
	content, err := h.contentUsecase.GenerateCard(c.Request.Context(), c.Param("id"), c.DefaultQuery("locale", "en"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

// GenerateAll queues every card without content for background generation
// POST /api/admin/cards/generate-all?locale=en
func (h *ContentHandler) GenerateAll(c *gin.Context) {
	result, err := h.contentUsecase.QueueAll(c.DefaultQuery("locale", "en"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, result)
}

// Import stores externally supplied card meanings
// POST /api/admin/cards/import
func (h *ContentHandler) Import(c *gin.Context) {
	var items []usecase.ImportItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.contentUsecase.Import(c.Request.Context(), items)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SemanticSearch finds cards by meaning
// GET /api/cards/semantic?q=new+beginnings&locale=en&limit=5
func (h *ContentHandler) SemanticSearch(c *gin.Context) {
	if !h.contentUsecase.SearchEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrSearchUnavailable.Error()})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	hits, err := h.contentUsecase.SemanticSearch(c.Request.Context(), query, c.DefaultQuery("locale", "en"), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": hits,
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, tarot.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
	case errors.Is(err, domain.ErrNotConfigured), errors.Is(err, domain.ErrSearchUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
