package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/pkg/response"
	"github.com/oksasatya/courseitda/pkg/validation"
)

type SettingsHandler struct {
	Settings *application.SettingsService
	Logger   *logrus.Logger
}

func NewSettingsHandler(settings *application.SettingsService, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{Settings: settings, Logger: logger}
}

// Absent fields are left alone; an empty string removes the key.
type updateSettingsRequest struct {
	KakaoRestKey *string `json:"kakaoRestKey"`
	KakaoJSKey   *string `json:"kakaoJsKey"`
}

// Get GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.Settings.Get(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, s, "ok", nil)
}

// Put PUT /api/settings
func (h *SettingsHandler) Put(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()
	uid := userID(c)
	if req.KakaoRestKey != nil {
		if err := h.Settings.SetKakaoRestKey(ctx, uid, *req.KakaoRestKey); err != nil {
			fail(c, h.Logger, err)
			return
		}
	}
	if req.KakaoJSKey != nil {
		if err := h.Settings.SetKakaoJSKey(ctx, uid, *req.KakaoJSKey); err != nil {
			fail(c, h.Logger, err)
			return
		}
	}
	h.Get(c)
}
