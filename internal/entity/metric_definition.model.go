package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MetricDefinition struct {
	gorm.Model
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DataProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"data_product_id"`
	TemplateID    *uuid.UUID     `gorm:"type:uuid" json:"template_id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Type          string         `gorm:"type:varchar(50)" json:"type"`
	Query         string         `gorm:"type:text;not null" json:"query"`
	Parameters    datatypes.JSON `gorm:"type:jsonb" json:"parameters"`
	Threshold     float64        `json:"threshold"`
}

func (d *MetricDefinition) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
