package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/promptvault-backend/internal/http/handlers"
	httpMW "github.com/yungbote/promptvault-backend/internal/http/middleware"
	"github.com/yungbote/promptvault-backend/internal/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	ListingHandler  *httpH.ListingHandler
	FavoriteHandler *httpH.FavoriteHandler
	PurchaseHandler *httpH.PurchaseHandler
	PackHandler     *httpH.PackHandler
	CatalogHandler  *httpH.CatalogHandler
	SSEHandler      *httpH.SSEHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("promptvault"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		if cfg.CatalogHandler != nil {
			api.GET("/catalog", cfg.CatalogHandler.GetCatalog)
		}
	}

	// Browse surfaces work logged out; a token upgrades them with viewer
	// membership flags.
	browse := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			browse.Use(cfg.AuthMiddleware.OptionalAuth())
		}

		if cfg.ListingHandler != nil {
			browse.GET("/packs", cfg.ListingHandler.Browse)
			browse.GET("/packs/:id", cfg.ListingHandler.Detail)
			browse.GET("/users/:id/packs", cfg.ListingHandler.PacksByCreator)
		}
		if cfg.UserHandler != nil {
			browse.GET("/users/:id", cfg.UserHandler.GetProfile)
		}
		if cfg.SSEHandler != nil {
			browse.GET("/sse/stream", cfg.SSEHandler.Stream)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateMe)
			protected.POST("/me/avatar", cfg.UserHandler.UploadAvatar)
		}
		if cfg.ListingHandler != nil {
			protected.GET("/me/packs", cfg.ListingHandler.MyPacks)
			protected.GET("/me/favorites", cfg.ListingHandler.MyFavorites)
		}

		if cfg.PackHandler != nil {
			protected.POST("/packs", cfg.PackHandler.Publish)
			protected.PATCH("/packs/:id", cfg.PackHandler.Update)
			protected.DELETE("/packs/:id", cfg.PackHandler.Delete)
			protected.POST("/packs/images", cfg.PackHandler.UploadPreviewImages)
		}
		if cfg.FavoriteHandler != nil {
			protected.POST("/packs/:id/favorite", cfg.FavoriteHandler.Toggle)
		}
		if cfg.PurchaseHandler != nil {
			protected.POST("/packs/:id/purchase", cfg.PurchaseHandler.Toggle)
		}
	}

	return r
}
