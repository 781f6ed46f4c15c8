package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maoivy/fritter/internal/api/middleware"
	"github.com/maoivy/fritter/pkg/response"
)

// Feed returns the session user's materialized timeline: the O(1),
// eventually-consistent read path, entries in append order.
// @Summary Personalized feed (materialized)
// @Tags feed
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	entries, err := h.timeline.Materialized(c.Request.Context(), middleware.SessionUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, entries)
}

// FeedQuery returns the same timeline through the fan-in path: freets of
// the session user and everyone they follow, queried live, newest first.
// Always consistent, costs O(followed authors) per request.
// @Summary Personalized feed (direct query)
// @Tags feed
// @Produce json
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(50)
// @Success 200 {object} response.Response
// @Router /api/v1/feed/query [get]
func (h *Handler) FeedQuery(c *gin.Context) {
	page, size := pageParams(c, 50)
	freets, err := h.timeline.QueryTimeline(c.Request.Context(), middleware.SessionUser(c), (page-1)*size, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": size, "list": freets})
}
