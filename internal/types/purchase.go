package types

import (
	"time"

	"github.com/google/uuid"
)

type Purchase struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_pack" json:"user_id"`
	User         *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	PromptPackID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_purchases_user_pack;column:prompt_pack_id" json:"prompt_pack_id"`
	PromptPack   *PromptPack `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptPackID;references:ID" json:"-"`
	Amount       float64     `gorm:"not null;default:0;column:amount" json:"amount"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}
