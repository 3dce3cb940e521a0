package delivery

import (
	"errors"
	"net/http"
	"strconv"

	contentdomain "tarot-backend/internal/content/domain"
	"tarot-backend/internal/tarot/domain"
	"tarot-backend/internal/tarot/usecase"

	"github.com/gin-gonic/gin"
)

// ContentProvider returns stored meanings of a card
type ContentProvider interface {
	GetCardContent(cardID string) ([]*contentdomain.CardContent, error)
}

// CardHandler handles card and spread catalog requests
type CardHandler struct {
	catalogUsecase usecase.CatalogUsecase
	content        ContentProvider
}

// NewCardHandler creates a new CardHandler. content may be nil when no
// database is configured.
func NewCardHandler(catalogUsecase usecase.CatalogUsecase, content ContentProvider) *CardHandler {
	return &CardHandler{
		catalogUsecase: catalogUsecase,
		content:        content,
	}
}

// GetCards returns the deck
// GET /api/cards?arcana=minor&suit=cups
func (h *CardHandler) GetCards(c *gin.Context) {
	cards, err := h.catalogUsecase.ListCards(usecase.CardFilter{
		Arcana: c.Query("arcana"),
		Suit:   c.Query("suit"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cards": cards,
		"total": len(cards),
	})
}

// GetCardByID returns one card with any stored meanings
// GET /api/cards/:id
func (h *CardHandler) GetCardByID(c *gin.Context) {
	card, err := h.catalogUsecase.GetCard(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	content := []*contentdomain.CardContent{}
	if h.content != nil {
		stored, err := h.content.GetCardContent(card.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if stored != nil {
			content = stored
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"card":    card,
		"content": content,
	})
}

// SearchCards performs typo-tolerant name search
// GET /api/cards/search?q=strar&limit=10
func (h *CardHandler) SearchCards(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": h.catalogUsecase.SearchCards(query, limit),
	})
}

// LookupCard resolves a free-form name to one card
// GET /api/cards/lookup?name=rainha+de+copas
func (h *CardHandler) LookupCard(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'name' is required"})
		return
	}

	result, err := h.catalogUsecase.LookupCard(name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSpreads returns the spread catalog
// GET /api/spreads
func (h *CardHandler) GetSpreads(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"spreads": h.catalogUsecase.ListSpreads()})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
	case errors.Is(err, domain.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
