package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/courseitda/internal/interface/http"
)

type SettingsModule struct {
	Handler *handlers.SettingsHandler
	Auth    gin.HandlerFunc
}

func NewSettingsModule(h *handlers.SettingsHandler, auth gin.HandlerFunc) *SettingsModule {
	return &SettingsModule{Handler: h, Auth: auth}
}

func (m *SettingsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/settings", m.Auth, m.Handler.Get)
	rg.PUT("/settings", m.Auth, m.Handler.Put)
}
