package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/courseitda/internal/interface/http"
	"github.com/oksasatya/courseitda/internal/interface/middleware"
)

// WorkspaceModule serves /workspaces and everything scoped by a workspace id.
type WorkspaceModule struct {
	Workspaces *handlers.WorkspaceHandler
	Categories *handlers.CategoryHandler
	Auth       gin.HandlerFunc
	RDB        *redis.Client
}

func NewWorkspaceModule(ws *handlers.WorkspaceHandler, cats *handlers.CategoryHandler, auth gin.HandlerFunc, rdb *redis.Client) *WorkspaceModule {
	return &WorkspaceModule{Workspaces: ws, Categories: cats, Auth: auth, RDB: rdb}
}

func (m *WorkspaceModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/workspaces", m.Auth,
		middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		g.GET("", m.Workspaces.List)
		g.POST("", m.Workspaces.Create)
		g.GET("/:id", m.Workspaces.Get)
		g.PATCH("/:id", m.Workspaces.Update)
		g.DELETE("/:id", m.Workspaces.Delete)

		g.GET("/:id/overview", m.Workspaces.Overview)
		// exports write to object storage; keep them rare
		g.POST("/:id/export", middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByUserID(), nil), m.Workspaces.Export)

		g.GET("/:id/categories", m.Categories.List)
		g.POST("/:id/categories", m.Categories.Add)
		g.PUT("/:id/categories/order", m.Categories.Reorder)
	}
}
