package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/nutrition"
)

func newMealService(db *gorm.DB) *MealService {
	return NewMealService(db, newTargetService(db))
}

func TestLogMealDefaultsMealType(t *testing.T) {
	db := setupTestDB(t)
	svc := newMealService(db)
	ctx := context.Background()
	userID := uuid.New()

	ateAt := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	meal, err := svc.LogMeal(ctx, userID, &models.Meal{
		AteAt: ateAt,
		Items: []models.MealItem{{FoodLabel: "Oatmeal", Calories: 300, ProteinG: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, "breakfast", meal.MealType)

	// User override wins over the classifier.
	meal, err = svc.LogMeal(ctx, userID, &models.Meal{
		MealType: "snack",
		AteAt:    ateAt,
		Items:    []models.MealItem{{FoodLabel: "Banana", Calories: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, "snack", meal.MealType)
}

func TestLogMealRequiresItems(t *testing.T) {
	db := setupTestDB(t)
	svc := newMealService(db)

	_, err := svc.LogMeal(context.Background(), uuid.New(), &models.Meal{})
	assert.ErrorIs(t, err, nutrition.ErrInsufficientData)
}

func TestListByDateScopesToDay(t *testing.T) {
	db := setupTestDB(t)
	svc := newMealService(db)
	ctx := context.Background()
	userID := uuid.New()

	day := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{day, day.Add(-24 * time.Hour), day.Add(24 * time.Hour)} {
		_, err := svc.LogMeal(ctx, userID, &models.Meal{
			AteAt: at,
			Items: []models.MealItem{{FoodLabel: "Meal", Calories: 500}},
		})
		require.NoError(t, err)
	}

	meals, err := svc.ListByDate(ctx, userID, day)
	require.NoError(t, err)
	assert.Len(t, meals, 1)
	require.Len(t, meals[0].Items, 1)
	assert.Equal(t, "Meal", meals[0].Items[0].FoodLabel)
}

func TestProgressAgainstAcceptedTarget(t *testing.T) {
	db := setupTestDB(t)
	targets := newTargetService(db)
	svc := NewMealService(db, targets)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	_, err := targets.ProposeTarget(ctx, userID, models.TargetDate(now), testRecommendation(2000, 150), nil)
	require.NoError(t, err)
	_, err = targets.AcceptTarget(ctx, userID, models.TargetDate(now))
	require.NoError(t, err)

	_, err = svc.LogMeal(ctx, userID, &models.Meal{
		AteAt: now,
		Items: []models.MealItem{
			{FoodLabel: "Chicken", Calories: 400, ProteinG: 50, CarbsG: 0, FatG: 10},
			{FoodLabel: "Rice", Calories: 600, ProteinG: 10, CarbsG: 130, FatG: 2},
		},
	})
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, userID, now)
	require.NoError(t, err)
	assert.True(t, progress.HasTarget)
	assert.Equal(t, 1000.0, progress.Nutrients["calories"].Consumed)
	assert.InDelta(t, 0.5, progress.Nutrients["calories"].Percent, 0.001)
	assert.InDelta(t, 0.4, progress.Nutrients["protein"].Percent, 0.001)
}

func TestProgressPercentCappedAtOne(t *testing.T) {
	db := setupTestDB(t)
	targets := newTargetService(db)
	svc := NewMealService(db, targets)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	_, err := targets.ProposeTarget(ctx, userID, models.TargetDate(now), testRecommendation(1500, 100), nil)
	require.NoError(t, err)
	_, err = targets.AcceptTarget(ctx, userID, models.TargetDate(now))
	require.NoError(t, err)

	_, err = svc.LogMeal(ctx, userID, &models.Meal{
		AteAt: now,
		Items: []models.MealItem{{FoodLabel: "Feast", Calories: 4000, ProteinG: 300}},
	})
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, userID, now)
	require.NoError(t, err)
	assert.Equal(t, 1.0, progress.Nutrients["calories"].Percent)
	assert.Equal(t, 1.0, progress.Nutrients["protein"].Percent)
}

func TestProgressWithoutTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := newMealService(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	_, err := svc.LogMeal(ctx, userID, &models.Meal{
		AteAt: now,
		Items: []models.MealItem{{FoodLabel: "Toast", Calories: 200}},
	})
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, userID, now)
	require.NoError(t, err)
	assert.False(t, progress.HasTarget)
	assert.Equal(t, 200.0, progress.Nutrients["calories"].Consumed)
	assert.Equal(t, 0.0, progress.Nutrients["calories"].Percent)
}

func TestAttachPhoto(t *testing.T) {
	db := setupTestDB(t)
	svc := newMealService(db)
	ctx := context.Background()
	userID := uuid.New()

	meal, err := svc.LogMeal(ctx, userID, &models.Meal{
		Items: []models.MealItem{{FoodLabel: "Salad", Calories: 150}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.AttachPhoto(ctx, userID, meal.ID, "https://bucket.s3.amazonaws.com/x.jpg"))

	// Another user cannot touch the meal.
	err = svc.AttachPhoto(ctx, uuid.New(), meal.ID, "https://evil")
	assert.ErrorIs(t, err, ErrNotFound)
}
