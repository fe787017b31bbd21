package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalType enumerates the supported goal kinds.
type GoalType string

const (
	GoalWeightLoss       GoalType = "weight_loss"
	GoalWeightGain       GoalType = "weight_gain"
	GoalBodyFatReduction GoalType = "body_fat_reduction"
	GoalMuscleGain       GoalType = "muscle_gain"
	GoalMaintenance      GoalType = "maintenance"
)

// Valid reports whether t is one of the known goal types.
func (t GoalType) Valid() bool {
	switch t {
	case GoalWeightLoss, GoalWeightGain, GoalBodyFatReduction, GoalMuscleGain, GoalMaintenance:
		return true
	}
	return false
}

// Goal is a user's nutrition goal. At most one goal per user is active at a
// time; GoalService.ReplaceActiveGoal enforces that inside a transaction.
type Goal struct {
	ID               uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	GoalType         GoalType       `gorm:"size:30;not null" json:"goal_type"`
	TargetWeightKg   *float64       `json:"target_weight_kg,omitempty"`
	TargetBodyFatPct *float64       `json:"target_body_fat_pct,omitempty"`
	TargetDate       *time.Time     `json:"target_date,omitempty"`
	DailyCalories    *int           `json:"daily_calories,omitempty"`
	DailyProteinG    *int           `json:"daily_protein_g,omitempty"`
	IsActive         bool           `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (Goal) TableName() string {
	return "goals"
}
