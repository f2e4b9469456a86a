package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchemaChange records one field-level difference observed during a
// warehouse schema import.
type SchemaChange struct {
	gorm.Model
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DataProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"data_product_id"`
	ChangeType    string    `gorm:"type:varchar(50);not null" json:"change_type"`
	ColumnName    string    `gorm:"type:varchar(255)" json:"column_name"`
	FieldName     string    `gorm:"type:varchar(255)" json:"field_name"`
	OldValue      string    `gorm:"type:text" json:"old_value"`
	NewValue      string    `gorm:"type:text" json:"new_value"`
}

func (s *SchemaChange) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
