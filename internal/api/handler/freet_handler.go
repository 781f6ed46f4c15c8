package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maoivy/fritter/internal/api/middleware"
	"github.com/maoivy/fritter/pkg/response"
)

type createFreetRequest struct {
	Content    string   `json:"content" binding:"required,max=140"`
	Readmore   string   `json:"readmore" binding:"max=600"`
	Categories []string `json:"categories" binding:"omitempty,dive,freetcategory"`
}

// CreateFreet publishes a freet and fans it out to follower feeds.
// @Summary Publish a freet
// @Tags freets
// @Accept json
// @Produce json
// @Param request body createFreetRequest true "freet"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/freets [post]
func (h *Handler) CreateFreet(c *gin.Context) {
	var req createFreetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	freet, err := h.freets.Create(c.Request.Context(), middleware.SessionUser(c), req.Content, req.Readmore, req.Categories)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, freet)
}

// GetFreet returns one freet.
// @Summary Get freet
// @Tags freets
// @Param id path string true "freet ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/freets/{id} [get]
func (h *Handler) GetFreet(c *gin.Context) {
	freet, err := h.freets.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, freet)
}

// ListFreets is the public browse-everything query, newest first.
// @Summary List all freets
// @Tags freets
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(50)
// @Success 200 {object} response.Response
// @Router /api/v1/freets [get]
func (h *Handler) ListFreets(c *gin.Context) {
	page, size := pageParams(c, 50)
	freets, err := h.freets.ListAll(c.Request.Context(), (page-1)*size, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": size, "list": freets})
}

// ListFreetsByAuthor returns one author's freets in creation order.
// @Summary List freets by author
// @Tags freets
// @Param user_id path string true "author ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/id/{user_id}/freets [get]
func (h *Handler) ListFreetsByAuthor(c *gin.Context) {
	freets, err := h.freets.ListByAuthor(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, freets)
}

// ListFreetsByCategory filters freets by category, newest first.
// @Summary List freets by category
// @Tags freets
// @Param category path string true "category"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(50)
// @Success 200 {object} response.Response
// @Router /api/v1/categories/{category}/freets [get]
func (h *Handler) ListFreetsByCategory(c *gin.Context) {
	page, size := pageParams(c, 50)
	freets, err := h.freets.ListByCategory(c.Request.Context(), c.Param("category"), (page-1)*size, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": size, "list": freets})
}

// DeleteFreet removes the session user's freet and retracts it from feeds.
// @Summary Delete freet
// @Tags freets
// @Param id path string true "freet ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/freets/{id} [delete]
func (h *Handler) DeleteFreet(c *gin.Context) {
	if err := h.freets.Delete(c.Request.Context(), middleware.SessionUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// LikeFreet likes a freet.
// @Summary Like freet
// @Tags freets
// @Param id path string true "freet ID"
// @Success 200 {object} response.Response
// @Router /api/v1/freets/{id}/likes [post]
func (h *Handler) LikeFreet(c *gin.Context) {
	if err := h.freets.Like(c.Request.Context(), middleware.SessionUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// UnlikeFreet removes a like.
// @Summary Unlike freet
// @Tags freets
// @Param id path string true "freet ID"
// @Success 200 {object} response.Response
// @Router /api/v1/freets/{id}/likes [delete]
func (h *Handler) UnlikeFreet(c *gin.Context) {
	if err := h.freets.Unlike(c.Request.Context(), middleware.SessionUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

type refreetRequest struct {
	// Content is optional: a bare refreet has none.
	Content string `json:"content" binding:"max=140"`
}

// Refreet republishes a freet into the session user's timeline.
// @Summary Refreet
// @Tags freets
// @Accept json
// @Produce json
// @Param id path string true "freet ID"
// @Param request body refreetRequest false "optional comment"
// @Success 201 {object} response.Response
// @Router /api/v1/freets/{id}/refreets [post]
func (h *Handler) Refreet(c *gin.Context) {
	var req refreetRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, err.Error())
		return
	}
	freet, err := h.freets.Refreet(c.Request.Context(), middleware.SessionUser(c), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, freet)
}

type replyRequest struct {
	Content  string `json:"content" binding:"required,max=140"`
	Readmore string `json:"readmore" binding:"max=600"`
}

// ReplyFreet publishes an answer to a freet.
// @Summary Reply to freet
// @Tags freets
// @Accept json
// @Produce json
// @Param id path string true "freet ID"
// @Param request body replyRequest true "reply"
// @Success 201 {object} response.Response
// @Router /api/v1/freets/{id}/replies [post]
func (h *Handler) ReplyFreet(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	freet, err := h.freets.Reply(c.Request.Context(), middleware.SessionUser(c), c.Param("id"), req.Content, req.Readmore)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, freet)
}

type updateCategoriesRequest struct {
	Categories []string `json:"categories" binding:"omitempty,dive,freetcategory"`
}

// UpdateFreetCategories replaces the freet's category set.
// @Summary Update freet categories
// @Tags freets
// @Accept json
// @Produce json
// @Param id path string true "freet ID"
// @Param request body updateCategoriesRequest true "categories"
// @Success 200 {object} response.Response
// @Router /api/v1/freets/{id}/categories [put]
func (h *Handler) UpdateFreetCategories(c *gin.Context) {
	var req updateCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.freets.UpdateCategories(c.Request.Context(), middleware.SessionUser(c), c.Param("id"), req.Categories); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

func pageParams(c *gin.Context, defaultSize int) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	return page, size
}
