package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QualityMetric is a single timestamped observation against a definition.
// One row per measurement, append only.
type QualityMetric struct {
	gorm.Model
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DataProductID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"data_product_id"`
	MetricDefinitionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"metric_definition_id"`
	Value              float64        `gorm:"not null" json:"value"`
	Metadata           datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	Timestamp          time.Time      `gorm:"not null;index" json:"timestamp"`
}

func (m *QualityMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}
