package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PromptPack struct {
	ID            uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title         string                       `gorm:"size:100;not null;column:title" json:"title"`
	Prompt        string                       `gorm:"type:text;not null;column:prompt" json:"prompt"`
	FullPrompt    string                       `gorm:"type:text;column:full_prompt" json:"-"`
	Description   string                       `gorm:"type:text;column:description" json:"description"`
	AIModel       string                       `gorm:"column:ai_model;index" json:"ai_model"`
	Category      string                       `gorm:"column:category;index" json:"category"`
	Price         float64                      `gorm:"not null;default:0;column:price" json:"price"`
	PreviewImages datatypes.JSONSlice[string]  `gorm:"column:preview_images" json:"preview_images"`
	CreatorID     uuid.UUID                    `gorm:"type:uuid;index;not null;column:creator_id" json:"creator_id"`
	Creator       *User                        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"-"`
	CreatedAt     time.Time                    `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt     time.Time                    `gorm:"not null;default:now()" json:"updated_at"`
}

func (PromptPack) TableName() string {
	return "prompt_packs"
}
