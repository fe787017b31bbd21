package nutrition

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
)

// Recommender tuning constants. The surplus fraction must stay within the
// 10–20% band; deficits are capped as a fraction of TDEE so an aggressive
// target date can never produce a starvation budget.
const (
	calorieFloor        = 1200 // kcal/day, hard lower bound
	defaultDeficitKcal  = 500  // kcal/day when the goal gives no target-date math
	surplusFraction     = 0.15 // of TDEE, for weight_gain / muscle_gain
	lossDeficitCap      = 0.25 // of TDEE, for weight_loss
	bodyFatDeficitCap   = 0.15 // of TDEE, for body_fat_reduction
	kcalPerKgBodyWeight = 7700 // energy content of ~1 kg of body fat
)

// Protein heuristics in g/kg of body weight per goal family.
const (
	proteinNoGoal      = 1.6
	proteinMaintenance = 1.8
	proteinDeficit     = 2.0
	proteinHighDeficit = 2.2
	proteinSurplus     = 2.2
)

// GoalInput is the slice of a Goal the recommender needs. A nil *GoalInput
// means "no active goal".
type GoalInput struct {
	Type           models.GoalType
	TargetWeightKg *float64
	TargetDate     *time.Time
	DailyCalories  *int
	DailyProteinG  *int
}

// Recommendation is the derived daily plan. Deficit and Surplus are mutually
// exclusive; Reasoning explains every number so the UI can render it verbatim.
type Recommendation struct {
	DailyCalories int    `json:"daily_calories"`
	DailyProteinG int    `json:"daily_protein_g"`
	DailyCarbsG   *int   `json:"daily_carbs_g,omitempty"`
	DailyFatG     *int   `json:"daily_fat_g,omitempty"`
	Reasoning     string `json:"reasoning"`
	BMR           int    `json:"bmr"`
	TDEE          int    `json:"tdee"`
	DeficitKcal   *int   `json:"deficit_kcal,omitempty"`
	SurplusKcal   *int   `json:"surplus_kcal,omitempty"`
}

// Recommend turns an energy estimate and the active goal into a daily target.
// weightKg is the same weight the estimate was computed from (protein scales
// on it). now anchors the target-date deficit math. Pure function.
func Recommend(est Estimate, weightKg float64, goal *GoalInput, now time.Time) (Recommendation, error) {
	if weightKg <= 0 {
		return Recommendation{}, fmt.Errorf("weight is required: %w", ErrInsufficientData)
	}

	rec := Recommendation{
		BMR:  int(est.BMR),
		TDEE: int(est.TDEE),
	}
	var steps []string
	steps = append(steps, fmt.Sprintf("Mifflin-St Jeor BMR %d kcal, TDEE %d kcal (x%.2f activity)", rec.BMR, rec.TDEE, est.ActivityMultiplier))
	steps = append(steps, est.Notes...)

	var calories, protein float64

	switch {
	case goal == nil:
		calories = est.TDEE
		protein = weightKg * proteinNoGoal
		steps = append(steps, fmt.Sprintf("no active goal, maintenance defaults applied: calories = TDEE, protein %.1f g/kg", proteinNoGoal))

	case goal.Type == models.GoalMaintenance:
		calories = est.TDEE
		protein = weightKg * proteinMaintenance
		steps = append(steps, fmt.Sprintf("maintenance: calories = TDEE, protein %.1f g/kg", proteinMaintenance))

	case goal.Type == models.GoalWeightLoss:
		deficit := goalDeficit(goal, weightKg, now, est.TDEE, lossDeficitCap, &steps)
		calories = est.TDEE - deficit
		protein = weightKg * proteinDeficit
		d := int(math.Round(deficit))
		rec.DeficitKcal = &d
		steps = append(steps, fmt.Sprintf("weight_loss: %d kcal deficit, protein %.1f g/kg to preserve lean mass", d, proteinDeficit))

	case goal.Type == models.GoalBodyFatReduction:
		deficit := goalDeficit(goal, weightKg, now, est.TDEE, bodyFatDeficitCap, &steps)
		calories = est.TDEE - deficit
		protein = weightKg * proteinHighDeficit
		d := int(math.Round(deficit))
		rec.DeficitKcal = &d
		steps = append(steps, fmt.Sprintf("body_fat_reduction: %d kcal deficit (conservative %.0f%% cap), protein %.1f g/kg", d, bodyFatDeficitCap*100, proteinHighDeficit))

	case goal.Type == models.GoalWeightGain || goal.Type == models.GoalMuscleGain:
		surplus := est.TDEE * surplusFraction
		calories = est.TDEE + surplus
		protein = weightKg * proteinSurplus
		s := int(math.Round(surplus))
		rec.SurplusKcal = &s
		steps = append(steps, fmt.Sprintf("%s: %d kcal surplus (%.0f%% of TDEE), protein %.1f g/kg", goal.Type, s, surplusFraction*100, proteinSurplus))

	default:
		return Recommendation{}, fmt.Errorf("goal type %q: %w", goal.Type, ErrInvalidGoal)
	}

	// Explicit goal targets override the computed numbers.
	if goal != nil && goal.DailyCalories != nil {
		calories = float64(*goal.DailyCalories)
		steps = append(steps, fmt.Sprintf("goal specifies an explicit %d kcal target, using it", *goal.DailyCalories))
	}
	if goal != nil && goal.DailyProteinG != nil {
		protein = float64(*goal.DailyProteinG)
		steps = append(steps, fmt.Sprintf("goal specifies an explicit %d g protein target, using it", *goal.DailyProteinG))
	}

	if calories < calorieFloor {
		calories = calorieFloor
		steps = append(steps, fmt.Sprintf("clamped to the %d kcal safety floor", calorieFloor))
	}

	rec.DailyCalories = int(math.Round(calories))
	rec.DailyProteinG = int(math.Round(protein))

	// Fat at 25% of calories, carbs from the remainder after protein and fat.
	fat := int(math.Round(calories * 0.25 / 9))
	carbs := int(math.Round((calories - float64(rec.DailyProteinG)*4 - float64(fat)*9) / 4))
	if carbs < 0 {
		carbs = 0
	}
	rec.DailyFatG = &fat
	rec.DailyCarbsG = &carbs

	rec.Reasoning = strings.Join(steps, "; ")
	return rec, nil
}

// goalDeficit derives the daily deficit from the goal's target weight and
// date when both are usable, otherwise falls back to defaultDeficitKcal.
// The result is always capped at cap*tdee, and the chosen path is recorded.
func goalDeficit(goal *GoalInput, weightKg float64, now time.Time, tdee, cap float64, steps *[]string) float64 {
	deficit := float64(defaultDeficitKcal)
	derived := false

	if goal.TargetWeightKg != nil && goal.TargetDate != nil {
		days := goal.TargetDate.Sub(now).Hours() / 24
		toLose := weightKg - *goal.TargetWeightKg
		if days >= 1 && toLose > 0 {
			deficit = toLose * kcalPerKgBodyWeight / days
			derived = true
			*steps = append(*steps, fmt.Sprintf("target implies losing %.1f kg over %.0f days (%.0f kcal/day deficit)", toLose, days, deficit))
		}
	}
	if !derived {
		*steps = append(*steps, fmt.Sprintf("no usable target date, default %d kcal/day deficit", defaultDeficitKcal))
	}

	if max := tdee * cap; deficit > max {
		deficit = max
		*steps = append(*steps, fmt.Sprintf("deficit capped at %.0f%% of TDEE (%.0f kcal)", cap*100, max))
	}
	return deficit
}
