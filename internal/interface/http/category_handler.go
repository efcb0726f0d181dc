package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/pkg/response"
	"github.com/oksasatya/courseitda/pkg/validation"
)

type CategoryHandler struct {
	Categories *application.CategoryService
	Places     *application.PlaceService
	Access     *Access
	Logger     *logrus.Logger
}

func NewCategoryHandler(cats *application.CategoryService, places *application.PlaceService, access *Access, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Categories: cats, Places: places, Access: access, Logger: logger}
}

type addCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color" binding:"omitempty,color"`
}

type representativeRequest struct {
	PlaceID *string `json:"placeId"`
}

// List GET /api/workspaces/:id/categories
func (h *CategoryHandler) List(c *gin.Context) {
	wsID := c.Param("id")
	if _, err := h.Access.Workspace(c, wsID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	items, err := h.Categories.ListByWorkspace(c.Request.Context(), wsID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "ok", gin.H{"count": len(items)})
}

// Add POST /api/workspaces/:id/categories
func (h *CategoryHandler) Add(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	wsID := c.Param("id")
	if _, err := h.Access.Workspace(c, wsID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	cat, err := h.Categories.Add(c.Request.Context(), wsID, req.Name)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, cat, "category added", nil)
}

// Reorder PUT /api/workspaces/:id/categories/order
func (h *CategoryHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	wsID := c.Param("id")
	if _, err := h.Access.Workspace(c, wsID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	if err := h.Categories.Reorder(c.Request.Context(), wsID, req.IDs); err != nil {
		fail(c, h.Logger, err)
		return
	}
	items, err := h.Categories.ListByWorkspace(c.Request.Context(), wsID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "categories reordered", nil)
}

// Update PATCH /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id := c.Param("id")
	if _, err := h.Access.Category(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	cat, err := h.Categories.Update(c.Request.Context(), id, application.CategoryPatch{Name: req.Name, Color: req.Color})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category updated", nil)
}

// Delete DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Access.Category(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "category deleted", nil)
}

// SetRepresentative PUT /api/categories/:id/representative
// A null placeId clears the representative.
func (h *CategoryHandler) SetRepresentative(c *gin.Context) {
	var req representativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id := c.Param("id")
	if _, err := h.Access.Category(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	cat, err := h.Categories.SetRepresentative(c.Request.Context(), id, req.PlaceID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "representative updated", nil)
}

// ListPlaces GET /api/categories/:id/places
func (h *CategoryHandler) ListPlaces(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Access.Category(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	items, err := h.Places.ListByCategory(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "ok", gin.H{"count": len(items)})
}

// AttachPlace POST /api/categories/:id/places
// The body is one document of the keyword search response.
func (h *CategoryHandler) AttachPlace(c *gin.Context) {
	var ext entity.ExternalPlace
	if err := c.ShouldBindJSON(&ext); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id := c.Param("id")
	cat, err := h.Access.Category(c, id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	p, err := h.Places.AttachToCategory(c.Request.Context(), cat.WorkspaceID, id, ext)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "place added", nil)
}

// RemovePlace DELETE /api/categories/:id/places/:placeId
func (h *CategoryHandler) RemovePlace(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Access.Category(c, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	if err := h.Places.Remove(c.Request.Context(), c.Param("placeId"), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"removed": true}, "place removed", nil)
}
