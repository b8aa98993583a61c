package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/repos"
)

// ToggleResult carries the authoritative post-commit state. Clients render
// from this response, never from an optimistic guess.
type ToggleResult struct {
	PackID        uuid.UUID `json:"pack_id"`
	Favorited     bool      `json:"favorited"`
	FavoriteCount int64     `json:"favorite_count"`
}

type FavoriteService interface {
	Toggle(ctx context.Context, userID, packID uuid.UUID) (*ToggleResult, error)
}

type favoriteService struct {
	db           *gorm.DB
	log          *logger.Logger
	packRepo     repos.PromptPackRepo
	favoriteRepo repos.FavoriteRepo
	notifier     PackNotifier
}

func NewFavoriteService(
	db *gorm.DB,
	log *logger.Logger,
	packRepo repos.PromptPackRepo,
	favoriteRepo repos.FavoriteRepo,
	notifier PackNotifier,
) FavoriteService {
	serviceLog := log.With("service", "FavoriteService")
	return &favoriteService{
		db:           db,
		log:          serviceLog,
		packRepo:     packRepo,
		favoriteRepo: favoriteRepo,
		notifier:     notifier,
	}
}

func (fs *favoriteService) Toggle(ctx context.Context, userID, packID uuid.UUID) (*ToggleResult, error) {
	if _, err := fs.packRepo.GetByID(ctx, nil, packID); err != nil {
		return nil, err
	}

	var result *ToggleResult
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := fs.applyToggle(ctx, tx, userID, packID)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		fs.log.Error("favorite toggle failed", "userID", userID, "packID", packID, "error", err)
		return nil, err
	}

	if fs.notifier != nil {
		fs.notifier.FavoriteChanged(ctx, packID, result.FavoriteCount)
	}
	return result, nil
}

// applyToggle is the transactional core: flip the edge, then recount so the
// result carries the state the commit will make visible.
func (fs *favoriteService) applyToggle(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) (*ToggleResult, error) {
	favorited, err := fs.favoriteRepo.Exists(ctx, tx, userID, packID)
	if err != nil {
		return nil, fmt.Errorf("check favorite edge: %w", err)
	}

	if favorited {
		if err := fs.favoriteRepo.Delete(ctx, tx, userID, packID); err != nil {
			return nil, fmt.Errorf("delete favorite edge: %w", err)
		}
	} else {
		if err := fs.favoriteRepo.Insert(ctx, tx, userID, packID); err != nil {
			return nil, fmt.Errorf("insert favorite edge: %w", err)
		}
	}

	count, err := fs.favoriteRepo.CountForPack(ctx, tx, packID)
	if err != nil {
		return nil, fmt.Errorf("recount favorites: %w", err)
	}

	return &ToggleResult{
		PackID:        packID,
		Favorited:     !favorited,
		FavoriteCount: count,
	}, nil
}
