package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

func TestMenuItemSearchKeywordFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuItemService(db, newMealService(db))
	ctx := context.Background()

	for _, it := range []*models.MenuItem{
		{Brand: "BurgerBarn", Name: "Classic Cheeseburger", Calories: 550, ProteinG: 28},
		{Brand: "BurgerBarn", Name: "Garden Salad", Calories: 180, ProteinG: 5},
		{Brand: "NoodleHouse", Name: "Beef Ramen", Calories: 620, ProteinG: 30},
	} {
		_, err := svc.CreateMenuItem(ctx, it)
		require.NoError(t, err)
	}

	items, err := svc.Search(ctx, "burger", 10)
	require.NoError(t, err)
	require.Len(t, items, 2) // brand match includes the salad
	for _, it := range items {
		assert.Equal(t, "BurgerBarn", it.Brand)
	}

	items, err = svc.Search(ctx, "ramen", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Beef Ramen", items[0].Name)
}

func TestQuickAddScalesServings(t *testing.T) {
	db := setupTestDB(t)
	meals := newMealService(db)
	svc := NewMenuItemService(db, meals)
	ctx := context.Background()
	userID := uuid.New()

	item, err := svc.CreateMenuItem(ctx, &models.MenuItem{
		Brand: "BurgerBarn", Name: "Fries", Calories: 300, ProteinG: 4, CarbsG: 40, FatG: 14,
	})
	require.NoError(t, err)

	meal, err := svc.QuickAdd(ctx, userID, item.ID, &types.QuickAddRequest{Servings: 2})
	require.NoError(t, err)
	require.Len(t, meal.Items, 1)
	assert.Equal(t, 600.0, meal.Items[0].Calories)
	assert.Equal(t, 8.0, meal.Items[0].ProteinG)
	assert.NotEmpty(t, meal.MealType) // classifier filled the default
}

func TestQuickAddUnknownItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuItemService(db, newMealService(db))

	_, err := svc.QuickAdd(context.Background(), uuid.New(), uuid.New(), &types.QuickAddRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
