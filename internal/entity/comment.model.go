package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	gorm.Model
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DataProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"data_product_id"`
	AuthorName      string         `gorm:"type:varchar(255);not null" json:"author_name"`
	Content         string         `gorm:"type:text;not null" json:"content"`
	LikeCount       int            `gorm:"not null;default:0" json:"like_count"`
	HelpfulCount    int            `gorm:"not null;default:0" json:"helpful_count"`
	InsightfulCount int            `gorm:"not null;default:0" json:"insightful_count"`
	Badges          []CommentBadge `gorm:"foreignKey:CommentID" json:"badges"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
