package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LineageEdge struct {
	gorm.Model
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DataProductID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"data_product_id"`
	SourceID            uuid.UUID      `gorm:"type:uuid;not null" json:"source_id"`
	TargetID            uuid.UUID      `gorm:"type:uuid;not null" json:"target_id"`
	TransformationLogic string         `gorm:"type:text" json:"transformation_logic"`
	Metadata            datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
}

func (e *LineageEdge) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
