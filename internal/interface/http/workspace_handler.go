package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/pkg/response"
	"github.com/oksasatya/courseitda/pkg/validation"
)

type WorkspaceHandler struct {
	Workspaces *application.WorkspaceService
	Course     *application.CourseService
	Access     *Access
	Logger     *logrus.Logger
}

func NewWorkspaceHandler(ws *application.WorkspaceService, course *application.CourseService, access *Access, logger *logrus.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{Workspaces: ws, Course: course, Access: access, Logger: logger}
}

type createWorkspaceRequest struct {
	Title     string `json:"title" binding:"required"`
	Headcount int    `json:"headcount" binding:"required,min=1"`
	Date      string `json:"date" binding:"omitempty,isodate"`
}

type updateWorkspaceRequest struct {
	Title     *string `json:"title"`
	Headcount *int    `json:"headcount" binding:"omitempty,min=1"`
	Date      *string `json:"date" binding:"omitempty,isodate"`
}

// List GET /api/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	items, err := h.Workspaces.ListByOwner(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "ok", gin.H{"count": len(items)})
}

// Create POST /api/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Workspaces.Create(c.Request.Context(), application.WorkspaceInput{
		OwnerID:   userID(c),
		Title:     req.Title,
		Headcount: req.Headcount,
		Date:      req.Date,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, w, "workspace created", nil)
}

// Get GET /api/workspaces/:id
func (h *WorkspaceHandler) Get(c *gin.Context) {
	w, err := h.Access.Workspace(c, c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, w, "ok", nil)
}

// Update PATCH /api/workspaces/:id
func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req updateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id := c.Param("id")
	if _, err := h.Access.Workspace(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	w, err := h.Workspaces.Update(c.Request.Context(), id, application.WorkspacePatch{
		Title:     req.Title,
		Headcount: req.Headcount,
		Date:      req.Date,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, w, "workspace updated", nil)
}

// Delete DELETE /api/workspaces/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Access.Workspace(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	if err := h.Workspaces.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "workspace deleted", nil)
}

// Overview GET /api/workspaces/:id/overview
func (h *WorkspaceHandler) Overview(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Access.Workspace(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	ov, err := h.Course.Overview(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ov, "ok", nil)
}

// Export POST /api/workspaces/:id/export
func (h *WorkspaceHandler) Export(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Access.Workspace(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	url, err := h.Course.Export(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "course exported", nil)
}
