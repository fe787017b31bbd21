package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// MenuItem is a branded quick-add entry: a restaurant menu item with known
// nutrition facts. Embedding supports similarity search over item names.
type MenuItem struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	Brand     string          `gorm:"size:100;not null;index" json:"brand"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	ServingG  float64         `json:"serving_g"`
	Calories  float64         `json:"calories"`
	ProteinG  float64         `json:"protein_g"`
	CarbsG    float64         `json:"carbs_g"`
	FatG      float64         `json:"fat_g"`
	Embedding pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (MenuItem) TableName() string {
	return "menu_items"
}
