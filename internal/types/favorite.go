package types

import (
	"time"

	"github.com/google/uuid"
)

// One row per (user, pack) edge. The composite unique index makes the
// toggle idempotent at the database level.
type Favorite struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_pack" json:"user_id"`
	User         *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	PromptPackID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorites_user_pack;column:prompt_pack_id" json:"prompt_pack_id"`
	PromptPack   *PromptPack `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptPackID;references:ID" json:"-"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
