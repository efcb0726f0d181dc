package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
)

// Access resolves route ids to records owned by the signed-in user.
type Access struct {
	Workspaces *application.WorkspaceService
	Categories *application.CategoryService
}

func NewAccess(ws *application.WorkspaceService, cats *application.CategoryService) *Access {
	return &Access{Workspaces: ws, Categories: cats}
}

// Workspace returns the workspace when the caller owns it.
func (a *Access) Workspace(c *gin.Context, id string) (*entity.Workspace, error) {
	w, err := a.Workspaces.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != userID(c) {
		return nil, application.ForbiddenError("workspace belongs to another user")
	}
	return w, nil
}

// Category returns the category when the caller owns its workspace.
func (a *Access) Category(c *gin.Context, id string) (*entity.Category, error) {
	cat, err := a.Categories.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if _, err := a.Workspace(c, cat.WorkspaceID); err != nil {
		return nil, err
	}
	return cat, nil
}
