package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MetricTypeCompleteness = "completeness"
	MetricTypeAccuracy     = "accuracy"
	MetricTypeTimeliness   = "timeliness"
	MetricTypeConsistency  = "consistency"
)

type MetricTemplate struct {
	gorm.Model
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Type       string         `gorm:"type:varchar(50);not null" json:"type"`
	Formula    string         `gorm:"type:text" json:"formula"`
	Parameters datatypes.JSON `gorm:"type:jsonb" json:"parameters"`
}

func (t *MetricTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
