package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LineageVersion is an append-only audit row. Rows are never updated after
// creation; the snapshot holds the full node/edge graph at save time.
type LineageVersion struct {
	gorm.Model
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DataProductID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_lineage_version_product" json:"data_product_id"`
	Version       int            `gorm:"not null;uniqueIndex:idx_lineage_version_product" json:"version"`
	Snapshot      datatypes.JSON `gorm:"type:jsonb" json:"snapshot"`
	ChangeMessage string         `gorm:"type:text" json:"change_message"`
	CreatedBy     string         `gorm:"type:varchar(255)" json:"created_by"`
}

func (v *LineageVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
