package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/courseitda/internal/interface/http"
	"github.com/oksasatya/courseitda/internal/interface/middleware"
)

type CategoryModule struct {
	Handler *handlers.CategoryHandler
	Auth    gin.HandlerFunc
	RDB     *redis.Client
}

func NewCategoryModule(h *handlers.CategoryHandler, auth gin.HandlerFunc, rdb *redis.Client) *CategoryModule {
	return &CategoryModule{Handler: h, Auth: auth, RDB: rdb}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/categories", m.Auth,
		middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		g.PATCH("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
		g.PUT("/:id/representative", m.Handler.SetRepresentative)
		g.GET("/:id/places", m.Handler.ListPlaces)
		g.POST("/:id/places", m.Handler.AttachPlace)
		g.DELETE("/:id/places/:placeId", m.Handler.RemovePlace)
	}
}
