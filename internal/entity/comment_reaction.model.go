package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReactionTypeLike       = "like"
	ReactionTypeHelpful    = "helpful"
	ReactionTypeInsightful = "insightful"
)

// CommentReaction enforces at most one reaction per (comment, type, user)
// through the composite unique index. Duplicate inserts must go through
// ON CONFLICT DO NOTHING rather than a check-then-insert.
type CommentReaction struct {
	gorm.Model
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CommentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_comment_type_user" json:"comment_id"`
	Type           string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_reaction_comment_type_user" json:"type"`
	UserIdentifier string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_reaction_comment_type_user" json:"user_identifier"`
}

func (r *CommentReaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func ValidReactionType(t string) bool {
	switch t {
	case ReactionTypeLike, ReactionTypeHelpful, ReactionTypeInsightful:
		return true
	}
	return false
}
