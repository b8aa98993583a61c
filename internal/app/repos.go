package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/repos"
)

type Repos struct {
	User       repos.UserRepo
	UserToken  repos.UserTokenRepo
	PromptPack repos.PromptPackRepo
	Favorite   repos.FavoriteRepo
	Purchase   repos.PurchaseRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		UserToken:  repos.NewUserTokenRepo(db, log),
		PromptPack: repos.NewPromptPackRepo(db, log),
		Favorite:   repos.NewFavoriteRepo(db, log),
		Purchase:   repos.NewPurchaseRepo(db, log),
	}
}
