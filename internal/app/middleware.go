package app

import (
	"github.com/yungbote/promptvault-backend/internal/http/middleware"
	"github.com/yungbote/promptvault-backend/internal/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, services.Auth),
	}
}
