package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/pkg/response"
)

// KakaoKeyHeader lets a client pass its own REST key for one search.
const KakaoKeyHeader = "X-Kakao-Rest-Key"

type PlaceHandler struct {
	Places *application.PlaceService
	Logger *logrus.Logger
}

func NewPlaceHandler(places *application.PlaceService, logger *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{Places: places, Logger: logger}
}

func queryInt(c *gin.Context, key string) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Search GET /api/places/search?q=&page=&size=
func (h *PlaceHandler) Search(c *gin.Context) {
	page, okPage := queryInt(c, "page")
	size, okSize := queryInt(c, "size")
	if !okPage || !okSize {
		response.Error[any](c, http.StatusBadRequest, "invalid query", gin.H{"page": "must be a positive number", "size": "must be a positive number"})
		return
	}
	res, err := h.Places.Search(c.Request.Context(), application.SearchInput{
		UserID: userID(c),
		Query:  c.Query("q"),
		Page:   page,
		Size:   size,
		APIKey: c.GetHeader(KakaoKeyHeader),
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res.Documents, "ok", res.Meta)
}

// Saved GET /api/places/saved?q=&size=
func (h *PlaceHandler) Saved(c *gin.Context) {
	size, ok := queryInt(c, "size")
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid query", gin.H{"size": "must be a positive number"})
		return
	}
	items, err := h.Places.SearchSaved(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "ok", gin.H{"count": len(items)})
}
