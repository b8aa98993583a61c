package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/yungbote/promptvault-backend/internal/http"
	"github.com/yungbote/promptvault-backend/internal/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:             log,
		AuthMiddleware:  middleware.Auth,
		AuthHandler:     handlers.Auth,
		UserHandler:     handlers.User,
		ListingHandler:  handlers.Listing,
		FavoriteHandler: handlers.Favorite,
		PurchaseHandler: handlers.Purchase,
		PackHandler:     handlers.Pack,
		CatalogHandler:  handlers.Catalog,
		SSEHandler:      handlers.SSE,
		HealthHandler:   handlers.Health,
	})
}
