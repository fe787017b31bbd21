package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyTarget is one proposed or accepted nutrition target for a user and
// calendar date. The date is stored as "YYYY-MM-DD" so comparisons stay
// timezone-naive. TargetService keeps at most one unaccepted proposal and at
// most one accepted row per (user, date); an accepted row and a fresh
// proposal may coexist until the proposal is accepted and supersedes it.
type DailyTarget struct {
	ID             uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:varchar(36);not null;index:idx_user_date" json:"user_id"`
	GoalID         *uuid.UUID `gorm:"type:varchar(36)" json:"goal_id,omitempty"`
	Date           string     `gorm:"size:10;not null;index:idx_user_date" json:"date"`
	CaloriesTarget int        `gorm:"not null" json:"calories_target"`
	ProteinTarget  int        `gorm:"not null" json:"protein_target"`
	CarbsTarget    *int       `json:"carbs_target,omitempty"`
	FatTarget      *int       `json:"fat_target,omitempty"`
	Reasoning      string     `gorm:"type:text" json:"reasoning"`
	IsAccepted     bool       `gorm:"not null;default:false" json:"is_accepted"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (d *DailyTarget) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (DailyTarget) TableName() string {
	return "daily_targets"
}

// TargetDate is the canonical date-key format for DailyTarget rows.
func TargetDate(t time.Time) string {
	return t.Format("2006-01-02")
}
