package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BadgeTypeQuality     = "quality"
	BadgeTypeTrending    = "trending"
	BadgeTypeInfluential = "influential"
)

type CommentBadge struct {
	gorm.Model
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;index" json:"comment_id"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
}

func (b *CommentBadge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
