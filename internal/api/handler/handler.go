package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/maoivy/fritter/internal/service"
	"github.com/maoivy/fritter/pkg/response"
)

// Handler bundles every route handler over the service layer.
type Handler struct {
	users       *service.UserService
	freets      *service.FreetService
	timeline    *service.TimelineService
	relService  service.RelationshipService
	collections *service.CollectionService
	relevance   *service.RelevanceService
}

func New(
	users *service.UserService,
	freets *service.FreetService,
	timeline *service.TimelineService,
	relService service.RelationshipService,
	collections *service.CollectionService,
	relevance *service.RelevanceService,
) *Handler {
	return &Handler{
		users:       users,
		freets:      freets,
		timeline:    timeline,
		relService:  relService,
		collections: collections,
		relevance:   relevance,
	}
}

// fail translates service errors into the response envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrFreetNotFound),
		errors.Is(err, service.ErrCollectionNotFound),
		errors.Is(err, service.ErrFeedNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrContentTooLong),
		errors.Is(err, service.ErrReadmoreTooLong),
		errors.Is(err, service.ErrBadCategory),
		errors.Is(err, service.ErrBadName),
		errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrNotLiked):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrAlreadyRefreeted),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrCollectionExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrNotAuthor):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
