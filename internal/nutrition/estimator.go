package nutrition

import (
	"fmt"
	"math"
)

// ActivityMultipliers maps activity level names to their TDEE multiplier.
// This is the single source of truth for valid activity levels — profile
// updates validate against it too.
var ActivityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Defaults applied when optional estimator inputs are missing. Every applied
// default is surfaced in Estimate.Notes so the recommendation reasoning can
// disclose it to the user.
const (
	defaultActivityLevel      = "sedentary"
	defaultActivityMultiplier = 1.2
	defaultHeightCm           = 170.0
	defaultAge                = 30
)

// EstimatorInput is the biometric snapshot the estimator works from.
// WeightKg is required; zero values elsewhere mean "unknown".
type EstimatorInput struct {
	WeightKg      float64
	HeightCm      float64
	Age           int
	Sex           string // "male" or "female"
	ActivityLevel string
}

// Estimate is the energy-expenditure result. Notes records every default the
// estimator had to apply.
type Estimate struct {
	BMR                float64
	TDEE               float64
	ActivityMultiplier float64
	Notes              []string
}

// EstimateEnergy computes BMR via Mifflin-St Jeor and TDEE = BMR * activity
// multiplier. Pure function; returns ErrInsufficientData when weight is
// missing or implausible.
func EstimateEnergy(in EstimatorInput) (Estimate, error) {
	if in.WeightKg <= 0 {
		return Estimate{}, fmt.Errorf("weight is required: %w", ErrInsufficientData)
	}
	// Plausibility guard against garbage input
	if in.WeightKg < 10 || in.WeightKg > 400 {
		return Estimate{}, fmt.Errorf("weight %.1f kg out of plausible range: %w", in.WeightKg, ErrInsufficientData)
	}

	var est Estimate

	height := in.HeightCm
	if height <= 0 {
		height = defaultHeightCm
		est.Notes = append(est.Notes, fmt.Sprintf("height unknown, assumed %.0f cm", defaultHeightCm))
	}
	age := in.Age
	if age <= 0 || age > 130 {
		age = defaultAge
		est.Notes = append(est.Notes, fmt.Sprintf("age unknown, assumed %d", defaultAge))
	}

	// Mifflin-St Jeor: sex picks the additive constant. Unknown sex uses the
	// female constant, the lower of the two.
	bmr := 10*in.WeightKg + 6.25*height - 5*float64(age)
	switch in.Sex {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		bmr -= 161
		est.Notes = append(est.Notes, "sex unknown, used the lower (female) BMR constant")
	}

	mult, ok := ActivityMultipliers[in.ActivityLevel]
	if !ok {
		mult = defaultActivityMultiplier
		est.Notes = append(est.Notes, fmt.Sprintf("activity level unknown, defaulted to %s (x%.1f)", defaultActivityLevel, defaultActivityMultiplier))
	}

	est.BMR = math.Round(bmr)
	est.TDEE = math.Round(bmr * mult)
	est.ActivityMultiplier = mult
	return est, nil
}
