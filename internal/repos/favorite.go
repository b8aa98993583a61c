package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/types"
)

type FavoriteRepo interface {
	// CountsByPack returns favorite counts grouped by pack id. Packs with no
	// favorites have no entry; callers default missing ids to zero.
	CountsByPack(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error)
	CountForPack(ctx context.Context, tx *gorm.DB, packID uuid.UUID) (int64, error)
	ListPackIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) (bool, error)
	Insert(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	repoLog := baseLog.With("repo", "FavoriteRepo")
	return &favoriteRepo{db: db, log: repoLog}
}

func (fr *favoriteRepo) CountsByPack(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var rows []struct {
		PromptPackID uuid.UUID
		Count        int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Select("prompt_pack_id, COUNT(*) AS count").
		Group("prompt_pack_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.PromptPackID] = row.Count
	}
	return counts, nil
}

func (fr *favoriteRepo) CountForPack(ctx context.Context, tx *gorm.DB, packID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("prompt_pack_id = ?", packID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (fr *favoriteRepo) ListPackIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("prompt_pack_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (fr *favoriteRepo) Exists(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("user_id = ? AND prompt_pack_id = ?", userID, packID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (fr *favoriteRepo) Insert(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	// Conflict on the composite unique index is a no-op, which keeps the
	// toggle idempotent under double delivery.
	edge := types.Favorite{UserID: userID, PromptPackID: packID}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "prompt_pack_id"}},
			DoNothing: true,
		}).
		Create(&edge).Error
}

func (fr *favoriteRepo) Delete(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND prompt_pack_id = ?", userID, packID).
		Delete(&types.Favorite{}).Error
}
