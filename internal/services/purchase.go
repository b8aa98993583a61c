package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/repos"
)

type PurchaseResult struct {
	PackID    uuid.UUID `json:"pack_id"`
	Purchased bool      `json:"purchased"`
	Amount    float64   `json:"amount"`
}

type PurchaseService interface {
	Toggle(ctx context.Context, userID, packID uuid.UUID) (*PurchaseResult, error)
	HasPurchased(ctx context.Context, userID, packID uuid.UUID) (bool, error)
}

type purchaseService struct {
	db           *gorm.DB
	log          *logger.Logger
	packRepo     repos.PromptPackRepo
	purchaseRepo repos.PurchaseRepo
}

func NewPurchaseService(
	db *gorm.DB,
	log *logger.Logger,
	packRepo repos.PromptPackRepo,
	purchaseRepo repos.PurchaseRepo,
) PurchaseService {
	serviceLog := log.With("service", "PurchaseService")
	return &purchaseService{
		db:           db,
		log:          serviceLog,
		packRepo:     packRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Toggle records or removes a purchase edge. Payment itself is out of
// scope; the edge is what gates full-prompt visibility.
func (ps *purchaseService) Toggle(ctx context.Context, userID, packID uuid.UUID) (*PurchaseResult, error) {
	pack, err := ps.packRepo.GetByID(ctx, nil, packID)
	if err != nil {
		return nil, err
	}
	if pack.CreatorID == userID {
		return nil, fmt.Errorf("cannot purchase your own pack")
	}

	result := &PurchaseResult{PackID: packID, Amount: pack.Price}
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchased, err := ps.purchaseRepo.Exists(ctx, tx, userID, packID)
		if err != nil {
			return fmt.Errorf("check purchase edge: %w", err)
		}
		if purchased {
			if err := ps.purchaseRepo.Delete(ctx, tx, userID, packID); err != nil {
				return fmt.Errorf("delete purchase edge: %w", err)
			}
		} else {
			if err := ps.purchaseRepo.Insert(ctx, tx, userID, packID, pack.Price); err != nil {
				return fmt.Errorf("insert purchase edge: %w", err)
			}
		}
		result.Purchased = !purchased
		return nil
	})
	if err != nil {
		ps.log.Error("purchase toggle failed", "userID", userID, "packID", packID, "error", err)
		return nil, err
	}
	return result, nil
}

func (ps *purchaseService) HasPurchased(ctx context.Context, userID, packID uuid.UUID) (bool, error) {
	return ps.purchaseRepo.Exists(ctx, nil, userID, packID)
}
