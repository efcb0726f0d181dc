package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/courseitda/internal/interface/http"
)

type ChangesModule struct {
	Handler *handlers.ChangesHandler
	Auth    gin.HandlerFunc
}

func NewChangesModule(h *handlers.ChangesHandler, auth gin.HandlerFunc) *ChangesModule {
	return &ChangesModule{Handler: h, Auth: auth}
}

func (m *ChangesModule) Register(rg *gin.RouterGroup) {
	rg.GET("/changes", m.Auth, m.Handler.Stream)
}
