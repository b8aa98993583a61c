package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/types"
)

type PurchaseRepo interface {
	ListPackIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) (bool, error)
	Insert(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID, amount float64) error
	Delete(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error
}

type purchaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPurchaseRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseRepo {
	repoLog := baseLog.With("repo", "PurchaseRepo")
	return &purchaseRepo{db: db, log: repoLog}
}

func (pr *purchaseRepo) ListPackIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Purchase{}).
		Where("user_id = ?", userID).
		Pluck("prompt_pack_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (pr *purchaseRepo) Exists(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Purchase{}).
		Where("user_id = ? AND prompt_pack_id = ?", userID, packID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *purchaseRepo) Insert(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID, amount float64) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	row := types.Purchase{UserID: userID, PromptPackID: packID, Amount: amount}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "prompt_pack_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (pr *purchaseRepo) Delete(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND prompt_pack_id = ?", userID, packID).
		Delete(&types.Purchase{}).Error
}
