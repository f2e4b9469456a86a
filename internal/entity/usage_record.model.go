package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ApiUsageRecord is one row per inbound API call. Append only, never updated.
type ApiUsageRecord struct {
	gorm.Model
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Endpoint   string         `gorm:"type:varchar(255);not null" json:"endpoint"`
	Method     string         `gorm:"type:varchar(10)" json:"method"`
	StatusCode int            `gorm:"not null" json:"status_code"`
	ErrorType  string         `gorm:"type:varchar(100)" json:"error_type"`
	QuotaUsed  int            `gorm:"not null;default:0" json:"quota_used"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	Timestamp  time.Time      `gorm:"not null;index" json:"timestamp"`
}

func (r *ApiUsageRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	return nil
}

// IsSuccessful reports whether the recorded status is in the 2xx range.
func (r *ApiUsageRecord) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
