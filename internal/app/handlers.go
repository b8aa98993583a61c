package app

import (
	"fmt"

	"github.com/yungbote/promptvault-backend/internal/catalog"
	"github.com/yungbote/promptvault-backend/internal/http/handlers"
	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/sse"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Listing  *handlers.ListingHandler
	Favorite *handlers.FavoriteHandler
	Purchase *handlers.PurchaseHandler
	Pack     *handlers.PackHandler
	Catalog  *handlers.CatalogHandler
	SSE      *handlers.SSEHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services, sseHub *sse.SSEHub) (Handlers, error) {
	log.Info("Wiring handlers...")

	cat, err := catalog.Load()
	if err != nil {
		return Handlers{}, fmt.Errorf("load catalog: %w", err)
	}

	return Handlers{
		Auth:     handlers.NewAuthHandler(services.Auth),
		User:     handlers.NewUserHandler(services.User),
		Listing:  handlers.NewListingHandler(services.Listing),
		Favorite: handlers.NewFavoriteHandler(services.Favorite),
		Purchase: handlers.NewPurchaseHandler(services.Purchase),
		Pack:     handlers.NewPackHandler(services.Pack),
		Catalog:  handlers.NewCatalogHandler(cat),
		SSE:      handlers.NewSSEHandler(sseHub),
		Health:   handlers.NewHealthHandler(),
	}, nil
}
