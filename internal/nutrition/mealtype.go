package nutrition

import "time"

// Meal type labels suggested by ClassifyMealType.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// ClassifyMealType maps a timestamp to a default meal type by hour of day.
// Canonical bands: breakfast [5,11), lunch [11,16), dinner [16,22), snack
// otherwise. The caller may always override the suggestion.
func ClassifyMealType(t time.Time) string {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 11:
		return MealBreakfast
	case hour >= 11 && hour < 16:
		return MealLunch
	case hour >= 16 && hour < 22:
		return MealDinner
	default:
		return MealSnack
	}
}
