package nutrition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateEnergyMale(t *testing.T) {
	est, err := EstimateEnergy(EstimatorInput{
		WeightKg:      80,
		HeightCm:      180,
		Age:           30,
		Sex:           "male",
		ActivityLevel: "moderate",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1780.0, est.BMR)
	assert.Equal(t, 1.55, est.ActivityMultiplier)
	assert.Equal(t, 2759.0, est.TDEE)
	assert.Empty(t, est.Notes)
}

func TestEstimateEnergyFemale(t *testing.T) {
	est, err := EstimateEnergy(EstimatorInput{
		WeightKg:      60,
		HeightCm:      165,
		Age:           25,
		Sex:           "female",
		ActivityLevel: "light",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1345.0, est.BMR) // 600 + 1031.25 - 125 - 161 = 1345.25 -> 1345
	assert.Greater(t, est.TDEE, est.BMR)
}

func TestEstimateEnergyPositiveInvariant(t *testing.T) {
	for _, in := range []EstimatorInput{
		{WeightKg: 45, HeightCm: 150, Age: 80, Sex: "female", ActivityLevel: "sedentary"},
		{WeightKg: 150, HeightCm: 200, Age: 18, Sex: "male", ActivityLevel: "very_active"},
		{WeightKg: 70},
	} {
		est, err := EstimateEnergy(in)
		assert.NoError(t, err)
		assert.Greater(t, est.BMR, 0.0)
		assert.GreaterOrEqual(t, est.TDEE, est.BMR)
	}
}

func TestEstimateEnergyMissingWeight(t *testing.T) {
	_, err := EstimateEnergy(EstimatorInput{HeightCm: 180, Age: 30, Sex: "male"})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEstimateEnergyImplausibleWeight(t *testing.T) {
	_, err := EstimateEnergy(EstimatorInput{WeightKg: 900})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEstimateEnergyUnknownActivityDefaultsAndNotes(t *testing.T) {
	est, err := EstimateEnergy(EstimatorInput{
		WeightKg: 80,
		HeightCm: 180,
		Age:      30,
		Sex:      "male",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1.2, est.ActivityMultiplier)
	// The default must be disclosed, never silent.
	found := false
	for _, n := range est.Notes {
		if strings.Contains(n, "activity level unknown") {
			found = true
		}
	}
	assert.True(t, found, "notes should mention the defaulted activity level: %v", est.Notes)
}
