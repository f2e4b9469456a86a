package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DataProduct struct {
	gorm.Model
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Owner           string         `gorm:"type:varchar(255)" json:"owner"`
	OwnerID         *uuid.UUID     `gorm:"type:uuid" json:"owner_id"`
	Domain          string         `gorm:"type:varchar(100)" json:"domain"`
	Tags            datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	SLA             string         `gorm:"type:varchar(100)" json:"sla"`
	UpdateFrequency string         `gorm:"type:varchar(100)" json:"update_frequency"`
	WarehouseTable  string         `gorm:"type:varchar(255)" json:"warehouse_table"`
	Columns         []SchemaColumn `gorm:"foreignKey:DataProductID" json:"schema"`
}

func (p *DataProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
