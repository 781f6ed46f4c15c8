package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maoivy/fritter/internal/api/middleware"
	"github.com/maoivy/fritter/pkg/response"
)

type createCollectionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// CreateCollection creates a named saved-freet list for the session user.
// @Summary Create collection
// @Tags collections
// @Accept json
// @Produce json
// @Param request body createCollectionRequest true "collection"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/collections [post]
func (h *Handler) CreateCollection(c *gin.Context) {
	var req createCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	collection, err := h.collections.Create(c.Request.Context(), middleware.SessionUser(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, collection)
}

// ListCollections lists the session user's collections.
// @Summary List collections
// @Tags collections
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/collections [get]
func (h *Handler) ListCollections(c *gin.Context) {
	collections, err := h.collections.ListByUser(c.Request.Context(), middleware.SessionUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, collections)
}

// GetCollection returns one collection with its saved freet references.
// @Summary Get collection
// @Tags collections
// @Param id path string true "collection ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/collections/{id} [get]
func (h *Handler) GetCollection(c *gin.Context) {
	collection, err := h.collections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, collection)
}

// DeleteCollection removes a collection.
// @Summary Delete collection
// @Tags collections
// @Param id path string true "collection ID"
// @Success 200 {object} response.Response
// @Router /api/v1/collections/{id} [delete]
func (h *Handler) DeleteCollection(c *gin.Context) {
	if err := h.collections.Delete(c.Request.Context(), middleware.SessionUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

type saveFreetRequest struct {
	FreetID string `json:"freet_id" binding:"required"`
}

// SaveToCollection appends a freet reference to the collection.
// @Summary Save freet to collection
// @Tags collections
// @Accept json
// @Produce json
// @Param id path string true "collection ID"
// @Param request body saveFreetRequest true "freet to save"
// @Success 200 {object} response.Response
// @Router /api/v1/collections/{id}/freets [post]
func (h *Handler) SaveToCollection(c *gin.Context) {
	var req saveFreetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.collections.Save(c.Request.Context(), middleware.SessionUser(c), c.Param("id"), req.FreetID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveFromCollection drops a freet reference from the collection.
// @Summary Remove freet from collection
// @Tags collections
// @Param id path string true "collection ID"
// @Param freet_id path string true "freet ID"
// @Success 200 {object} response.Response
// @Router /api/v1/collections/{id}/freets/{freet_id} [delete]
func (h *Handler) RemoveFromCollection(c *gin.Context) {
	if err := h.collections.Unsave(c.Request.Context(), middleware.SessionUser(c), c.Param("id"), c.Param("freet_id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
