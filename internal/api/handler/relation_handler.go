package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maoivy/fritter/internal/api/middleware"
	"github.com/maoivy/fritter/pkg/response"
)

type followRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Follow makes the session user follow another user; the followed user's
// existing freets are appended to the session user's feed.
// @Summary Follow a user
// @Tags relations
// @Accept json
// @Produce json
// @Param request body followRequest true "user to follow"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/follows [post]
func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.relService.Follow(c.Request.Context(), middleware.SessionUser(c), req.UserID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Unfollow removes the edge and prunes the followed user's entries from
// the session user's feed.
// @Summary Unfollow a user
// @Tags relations
// @Accept json
// @Produce json
// @Param request body followRequest true "user to unfollow"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/follows [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), middleware.SessionUser(c), req.UserID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// ListFollowing lists who a user follows.
// @Summary List following
// @Tags relations
// @Param user_id path string true "user ID"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users/id/{user_id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	page, size := pageParams(c, 10)
	list, err := h.relService.ListFollowing(c.Request.Context(), c.Param("user_id"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": size, "list": list})
}

// ListFollowers lists a user's followers (from the redundant fan table).
// @Summary List followers
// @Tags relations
// @Param user_id path string true "user ID"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users/id/{user_id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	page, size := pageParams(c, 10)
	list, err := h.relService.ListFollowers(c.Request.Context(), c.Param("user_id"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": size, "list": list})
}
