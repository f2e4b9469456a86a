package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NodeTypeSource         = "source"
	NodeTypeTransformation = "transformation"
	NodeTypeTarget         = "target"
)

type LineageNode struct {
	gorm.Model
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DataProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"data_product_id"`
	Type          string         `gorm:"type:varchar(50);not null" json:"type"`
	Label         string         `gorm:"type:varchar(255)" json:"label"`
	Details       datatypes.JSON `gorm:"type:jsonb" json:"details"`
}

func (n *LineageNode) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
