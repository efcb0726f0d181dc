package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/courseitda/internal/interface/http"
	"github.com/oksasatya/courseitda/internal/interface/middleware"
)

// PlaceModule serves external keyword search and saved-place search.
type PlaceModule struct {
	Handler *handlers.PlaceHandler
	Auth    gin.HandlerFunc
	RDB     *redis.Client
}

func NewPlaceModule(h *handlers.PlaceHandler, auth gin.HandlerFunc, rdb *redis.Client) *PlaceModule {
	return &PlaceModule{Handler: h, Auth: auth, RDB: rdb}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	// every search-as-you-type keystroke may hit the external API
	g := rg.Group("/places", m.Auth,
		middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		g.GET("/search", m.Handler.Search)
		g.GET("/saved", m.Handler.Saved)
	}
}
