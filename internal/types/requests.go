package types

import "time"

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Username      string `json:"username" binding:"required"`
	Age           int    `json:"age"`
	Sex           string `json:"sex"`
	ActivityLevel string `json:"activity_level"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries optional profile changes.
type UpdateProfileRequest struct {
	Username      *string `json:"username,omitempty"`
	Age           *int    `json:"age,omitempty"`
	Sex           *string `json:"sex,omitempty"`
	ActivityLevel *string `json:"activity_level,omitempty"`
}

// RecordBiometricRequest is the payload for POST /biometrics.
type RecordBiometricRequest struct {
	WeightKg   float64    `json:"weight_kg" binding:"required,gt=0"`
	HeightCm   *float64   `json:"height_cm,omitempty"`
	BodyFatPct *float64   `json:"body_fat_pct,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

// CreateGoalRequest is the payload for POST /goals. Creating a goal always
// activates it, replacing any previously active goal.
type CreateGoalRequest struct {
	GoalType         string     `json:"goal_type" binding:"required"`
	TargetWeightKg   *float64   `json:"target_weight_kg,omitempty"`
	TargetBodyFatPct *float64   `json:"target_body_fat_pct,omitempty"`
	TargetDate       *time.Time `json:"target_date,omitempty"`
	DailyCalories    *int       `json:"daily_calories,omitempty"`
	DailyProteinG    *int       `json:"daily_protein_g,omitempty"`
}

// ProposeTargetRequest selects the date to propose a target for; empty means
// today.
type ProposeTargetRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD
}

// AcceptTargetRequest selects the date whose pending proposal to accept;
// empty means today.
type AcceptTargetRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD
}

// MealItemRequest is one food line within a logged meal.
type MealItemRequest struct {
	FoodLabel string  `json:"food_label" binding:"required"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Calories  float64 `json:"calories"`
	ProteinG  float64 `json:"protein_g"`
	CarbsG    float64 `json:"carbs_g"`
	FatG      float64 `json:"fat_g"`
}

// LogMealRequest is the payload for POST /meals. MealType is optional; when
// empty the server classifies it from the hour of AteAt.
type LogMealRequest struct {
	MealType string            `json:"meal_type,omitempty"`
	AteAt    *time.Time        `json:"ate_at,omitempty"`
	Notes    string            `json:"notes,omitempty"`
	Items    []MealItemRequest `json:"items" binding:"required,min=1"`
}

// ParseMealRequest is the payload for POST /assistant/parse.
type ParseMealRequest struct {
	Description string `json:"description" binding:"required"`
}

// ChatRequest is the payload for POST /assistant/chat.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// QuickAddRequest logs a menu item as a meal, scaled by Servings (default 1).
type QuickAddRequest struct {
	Servings float64    `json:"servings,omitempty"`
	MealType string     `json:"meal_type,omitempty"`
	AteAt    *time.Time `json:"ate_at,omitempty"`
}
