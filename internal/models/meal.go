package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is one logged eating occasion. MealType defaults from the hour of
// AteAt (nutrition.ClassifyMealType) but the user may override it.
type Meal struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	MealType  string         `gorm:"size:20;not null" json:"meal_type"`
	AteAt     time.Time      `gorm:"not null;index" json:"ate_at"`
	Notes     string         `gorm:"type:text" json:"notes"`
	PhotoURL  string         `gorm:"size:255" json:"photo_url"`
	Items     []MealItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (Meal) TableName() string {
	return "meals"
}

// MealItem is a nutrition snapshot for one food within a meal. Values are
// totals for the logged quantity, not per-100g.
type MealItem struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	MealID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	FoodLabel string    `gorm:"size:255;not null" json:"food_label"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `gorm:"size:20" json:"unit"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *MealItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (MealItem) TableName() string {
	return "meal_items"
}
