package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tarot-backend/internal/daily"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := daily.NewService(time.UTC).WithClock(func() time.Time {
		return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	})
	h := NewDailyHandler(svc)

	r := gin.New()
	r.GET("/api/daily", h.GetDailyCard)
	r.GET("/api/daily/triad", h.GetTriad)
	r.GET("/api/daily/zodiac/:sign", h.GetSignCard)
	r.GET("/api/zodiac", h.GetSigns)
	r.GET("/api/zodiac/for-date", h.GetSignForDate)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

type cardBody struct {
	Date string `json:"date"`
	Card struct {
		ID string `json:"id"`
	} `json:"card"`
	Cards []struct {
		ID string `json:"id"`
	} `json:"cards"`
	Sign struct {
		ID string `json:"id"`
	} `json:"sign"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) cardBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body cardBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetDailyCard(t *testing.T) {
	r := newRouter()

	body := decode(t, get(r, "/api/daily"))
	assert.Equal(t, "2025-01-01", body.Date, "defaults to today")
	assert.Equal(t, "four-of-pentacles", body.Card.ID)

	assert.Equal(t, "four-of-pentacles", decode(t, get(r, "/api/daily?date=2025-01-01")).Card.ID)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/daily?date=01-01-2025").Code)
}

func TestGetTriad(t *testing.T) {
	body := decode(t, get(newRouter(), "/api/daily/triad?date=2025-01-01"))
	require.Len(t, body.Cards, 3)
	assert.Equal(t, "four-of-pentacles", body.Cards[0].ID)
	assert.Equal(t, "two-of-swords", body.Cards[1].ID)
	assert.Equal(t, "nine-of-swords", body.Cards[2].ID)
}

func TestGetSignCard(t *testing.T) {
	r := newRouter()

	body := decode(t, get(r, "/api/daily/zodiac/Leo?date=2025-08-01"))
	assert.Equal(t, "leo", body.Sign.ID)
	assert.Equal(t, "ten-of-wands", body.Card.ID)

	assert.Equal(t, http.StatusNotFound, get(r, "/api/daily/zodiac/ophiuchus").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/daily/zodiac/leo?date=tomorrow").Code)
}

func TestZodiac(t *testing.T) {
	r := newRouter()

	w := get(r, "/api/zodiac")
	assert.Equal(t, http.StatusOK, w.Code)
	var signs struct {
		Signs []daily.Sign `json:"signs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signs))
	assert.Len(t, signs.Signs, 12)

	w = get(r, "/api/zodiac?element=Water")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signs))
	assert.Len(t, signs.Signs, 3)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/zodiac?element=aether").Code)

	assert.Equal(t, "capricorn", decode(t, get(r, "/api/zodiac/for-date")).Sign.ID)
	assert.Equal(t, "aries", decode(t, get(r, "/api/zodiac/for-date?date=2025-03-21")).Sign.ID)
}
