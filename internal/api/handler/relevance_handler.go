package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maoivy/fritter/pkg/response"
)

type upvoteRequest struct {
	FreetID string `json:"freet_id" binding:"required"`
}

// UpvoteRelevance bumps a freet's relevance within a category.
// @Summary Upvote freet relevance in a category
// @Tags relevance
// @Accept json
// @Produce json
// @Param category path string true "category"
// @Param request body upvoteRequest true "freet to upvote"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/categories/{category}/relevance [post]
func (h *Handler) UpvoteRelevance(c *gin.Context) {
	var req upvoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	score, err := h.relevance.Upvote(c.Request.Context(), c.Param("category"), req.FreetID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"freet_id": req.FreetID, "score": score})
}

// TopRelevance returns the category's most relevant freets, best first.
// @Summary Top freets of a category
// @Tags relevance
// @Param category path string true "category"
// @Param n query int false "how many" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/categories/{category}/relevance [get]
func (h *Handler) TopRelevance(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))
	top, err := h.relevance.Top(c.Request.Context(), c.Param("category"), n)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, top)
}
