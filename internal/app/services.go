package app

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/services"
	"github.com/yungbote/promptvault-backend/internal/sse"
)

type Services struct {
	Avatar   services.AvatarService
	Auth     services.AuthService
	User     services.UserService
	Listing  services.ListingService
	Favorite services.FavoriteService
	Purchase services.PurchaseService
	Pack     services.PackService

	PackNotifier services.PackNotifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, sseHub *sse.SSEHub, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	avatarService, err := services.NewAvatarService(db, log, clients.GcpBucket)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		avatarService,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	// Single-process deployments broadcast straight to connected clients.
	// When Redis is configured the bus fans events out across instances.
	var emitter services.SSEEmitter
	if clients.SSEBus != nil && strings.EqualFold(strings.TrimSpace(os.Getenv("SSE_PUBLISH_MODE")), "redis") {
		emitter = &services.RedisEmitter{Bus: clients.SSEBus}
	} else {
		emitter = &services.HubEmitter{Hub: sseHub}
	}
	packNotifier := services.NewPackNotifier(emitter)

	userService := services.NewUserService(db, log, repos.User, avatarService)
	listingService := services.NewListingService(db, log, repos.PromptPack, repos.Favorite, repos.Purchase, repos.User)
	favoriteService := services.NewFavoriteService(db, log, repos.PromptPack, repos.Favorite, packNotifier)
	purchaseService := services.NewPurchaseService(db, log, repos.PromptPack, repos.Purchase)
	packService := services.NewPackService(db, log, repos.PromptPack, clients.GcpBucket, packNotifier)

	return Services{
		Avatar:       avatarService,
		Auth:         authService,
		User:         userService,
		Listing:      listingService,
		Favorite:     favoriteService,
		Purchase:     purchaseService,
		Pack:         packService,
		PackNotifier: packNotifier,
	}, nil
}
