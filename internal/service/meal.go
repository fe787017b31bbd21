package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/nutrition"
)

// MealService logs meals and summarizes daily intake against the accepted
// target.
type MealService struct {
	db      *gorm.DB
	targets *TargetService
}

func NewMealService(db *gorm.DB, targets *TargetService) *MealService {
	return &MealService{db: db, targets: targets}
}

// NutrientProgress is consumed-vs-target for one nutrient. Percent is capped
// at 1.0; a zero target reports zero percent.
type NutrientProgress struct {
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
}

// DailyProgress summarizes one day's intake against the accepted target.
type DailyProgress struct {
	Date      string                      `json:"date"`
	HasTarget bool                        `json:"has_target"`
	Nutrients map[string]NutrientProgress `json:"nutrients"`
}

// LogMeal stores a meal with its items. An empty MealType is defaulted from
// the hour of AteAt; a zero AteAt means now.
func (s *MealService) LogMeal(ctx context.Context, userID uuid.UUID, meal *models.Meal) (*models.Meal, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if len(meal.Items) == 0 {
		return nil, fmt.Errorf("a meal needs at least one item: %w", nutrition.ErrInsufficientData)
	}
	meal.UserID = userID
	if meal.AteAt.IsZero() {
		meal.AteAt = time.Now()
	}
	if meal.MealType == "" {
		meal.MealType = nutrition.ClassifyMealType(meal.AteAt)
	}

	if err := withStoreRetry(func() error {
		return s.db.WithContext(ctx).Create(meal).Error
	}); err != nil {
		return nil, fmt.Errorf("log meal: %w", err)
	}
	return meal, nil
}

// ListByDate returns the user's meals within the given calendar day,
// oldest first, items included.
func (s *MealService) ListByDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.Meal, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, start, end).
		Order("ate_at asc").
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

// AttachPhoto sets the photo URL on an existing meal owned by the user.
func (s *MealService) AttachPhoto(ctx context.Context, userID, mealID uuid.UUID, photoURL string) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	res := s.db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("id = ? AND user_id = ?", mealID, userID).
		Update("photo_url", photoURL)
	if res.Error != nil {
		return fmt.Errorf("attach photo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Progress aggregates the day's logged intake and compares it against the
// accepted target for that date. Without an accepted target the consumed
// totals are still returned with HasTarget=false.
func (s *MealService) Progress(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyProgress, error) {
	meals, err := s.ListByDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	var cals, protein, carbs, fat float64
	for _, m := range meals {
		for _, it := range m.Items {
			cals += it.Calories
			protein += it.ProteinG
			carbs += it.CarbsG
			fat += it.FatG
		}
	}

	progress := &DailyProgress{
		Date:      models.TargetDate(day),
		Nutrients: map[string]NutrientProgress{},
	}

	var calTarget, proteinTarget, carbsTarget, fatTarget float64
	target, err := s.targets.GetTodaysTarget(ctx, userID, day)
	switch {
	case err == nil:
		progress.HasTarget = true
		calTarget = float64(target.CaloriesTarget)
		proteinTarget = float64(target.ProteinTarget)
		if target.CarbsTarget != nil {
			carbsTarget = float64(*target.CarbsTarget)
		}
		if target.FatTarget != nil {
			fatTarget = float64(*target.FatTarget)
		}
	case errors.Is(err, ErrNotFound):
		// no accepted target yet, report consumption only
	default:
		return nil, err
	}

	pct := func(consumed, target float64) float64 {
		if target <= 0 {
			return 0
		}
		if p := consumed / target; p < 1 {
			return p
		}
		return 1
	}

	progress.Nutrients["calories"] = NutrientProgress{Consumed: cals, Target: calTarget, Percent: pct(cals, calTarget)}
	progress.Nutrients["protein"] = NutrientProgress{Consumed: protein, Target: proteinTarget, Percent: pct(protein, proteinTarget)}
	progress.Nutrients["carbs"] = NutrientProgress{Consumed: carbs, Target: carbsTarget, Percent: pct(carbs, carbsTarget)}
	progress.Nutrients["fat"] = NutrientProgress{Consumed: fat, Target: fatTarget, Percent: pct(fat, fatTarget)}
	return progress, nil
}
