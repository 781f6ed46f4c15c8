package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/maoivy/fritter/config"
	_ "github.com/maoivy/fritter/docs"
	"github.com/maoivy/fritter/internal/api/handler"
	"github.com/maoivy/fritter/internal/api/middleware"
)

// NewRouter assembles the gin engine: instance middleware, the public
// routes, and the authenticated route group.
func NewRouter(cfg *config.Config, h *handler.Handler, parser middleware.TokenParser) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(otelgin.Middleware("fritter"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users", h.Register)
		v1.POST("/sessions", h.Login)
		v1.GET("/users/:username", h.GetUser)
		v1.GET("/freets", h.ListFreets)
		v1.GET("/freets/:id", h.GetFreet)
		v1.GET("/categories/:category/freets", h.ListFreetsByCategory)
		v1.GET("/categories/:category/relevance", h.TopRelevance)
	}

	auth := v1.Group("", middleware.Auth(parser))
	{
		auth.GET("/users/me", h.Me)
		auth.PATCH("/users/me", h.UpdateProfile)
		auth.DELETE("/users/me", h.DeleteAccount)
		auth.GET("/users/id/:user_id/freets", h.ListFreetsByAuthor)
		auth.GET("/users/id/:user_id/following", h.ListFollowing)
		auth.GET("/users/id/:user_id/followers", h.ListFollowers)

		auth.POST("/freets", h.CreateFreet)
		auth.DELETE("/freets/:id", h.DeleteFreet)
		auth.POST("/freets/:id/likes", h.LikeFreet)
		auth.DELETE("/freets/:id/likes", h.UnlikeFreet)
		auth.POST("/freets/:id/refreets", h.Refreet)
		auth.POST("/freets/:id/replies", h.ReplyFreet)
		auth.PUT("/freets/:id/categories", h.UpdateFreetCategories)

		auth.GET("/feed", h.Feed)
		auth.GET("/feed/query", h.FeedQuery)

		auth.POST("/follows", h.Follow)
		auth.DELETE("/follows", h.Unfollow)

		auth.POST("/collections", h.CreateCollection)
		auth.GET("/collections", h.ListCollections)
		auth.GET("/collections/:id", h.GetCollection)
		auth.DELETE("/collections/:id", h.DeleteCollection)
		auth.POST("/collections/:id/freets", h.SaveToCollection)
		auth.DELETE("/collections/:id/freets/:freet_id", h.RemoveFromCollection)

		auth.POST("/categories/:category/relevance", h.UpvoteRelevance)
	}

	return r
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
