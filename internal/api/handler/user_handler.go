package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maoivy/fritter/internal/api/middleware"
	"github.com/maoivy/fritter/internal/service"
	"github.com/maoivy/fritter/pkg/response"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=6"`
	Bio      string `json:"bio" binding:"max=280"`
}

// Register creates an account (and its feed).
// @Summary Register a new account
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerRequest true "account info"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/users [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.Bio)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, user)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login issues a session token.
// @Summary Log in
// @Tags users
// @Accept json
// @Produce json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/sessions [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "user": user})
}

// Me returns the session user's profile.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.SessionUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}

// GetUser looks a profile up by username.
// @Summary Get user by username
// @Tags users
// @Param username path string true "username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
}

// UpdateProfile merges the provided profile fields.
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body updateProfileRequest true "fields to change"
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.SessionUser(c), service.ProfileUpdate{
		Username: req.Username,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteAccount removes the session user and cascades freets, edges,
// collections and the feed.
// @Summary Delete account
// @Tags users
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [delete]
func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.users.DeleteAccount(c.Request.Context(), middleware.SessionUser(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
