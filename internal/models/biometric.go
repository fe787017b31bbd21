package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Biometric is an immutable measurement record. Weight is required; height
// and body fat are optional. History is read most-recent-first.
type Biometric struct {
	ID         uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	WeightKg   float64    `gorm:"not null" json:"weight_kg"`
	HeightCm   *float64   `json:"height_cm,omitempty"`
	BodyFatPct *float64   `json:"body_fat_pct,omitempty"`
	RecordedAt time.Time  `gorm:"not null;index" json:"recorded_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (b *Biometric) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.RecordedAt.IsZero() {
		b.RecordedAt = time.Now()
	}
	return nil
}

func (Biometric) TableName() string {
	return "biometrics"
}
