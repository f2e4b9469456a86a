package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchemaColumn struct {
	gorm.Model
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_column_name_product" json:"name"`
	Type          string    `gorm:"type:varchar(255);not null" json:"type"`
	Description   string    `gorm:"type:text" json:"description"`
	DataProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_column_name_product" json:"data_product_id"`
}

func (c *SchemaColumn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
