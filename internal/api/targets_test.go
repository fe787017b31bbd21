package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordWeight(t *testing.T, env *testEnv, weightKg, heightCm float64) {
	t.Helper()
	w := env.do(t, "POST", "/api/v1/biometrics", map[string]any{
		"weight_kg": weightKg,
		"height_cm": heightCm,
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestProposeWithoutBiometrics(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "POST", "/api/v1/targets/propose", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProposeAcceptToday(t *testing.T) {
	env := setupEnv(t)
	recordWeight(t, env, 80, 180)

	// no accepted target yet
	w := env.do(t, "GET", "/api/v1/targets/today", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, "POST", "/api/v1/targets/propose", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var proposal struct {
		Target struct {
			ID         string `json:"id"`
			IsAccepted bool   `json:"is_accepted"`
			Calories   int    `json:"calories_target"`
		} `json:"target"`
		Recommendation struct {
			Reasoning string `json:"reasoning"`
		} `json:"recommendation"`
	}
	decodeJSON(t, w, &proposal)
	assert.False(t, proposal.Target.IsAccepted)
	assert.Greater(t, proposal.Target.Calories, 0)
	assert.NotEmpty(t, proposal.Recommendation.Reasoning)

	// accepting before the proposal exists for another date fails
	w = env.do(t, "POST", "/api/v1/targets/accept", map[string]any{"date": "1999-01-01"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, "POST", "/api/v1/targets/accept", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var accepted struct {
		ID         string `json:"id"`
		IsAccepted bool   `json:"is_accepted"`
	}
	decodeJSON(t, w, &accepted)
	assert.True(t, accepted.IsAccepted)
	assert.Equal(t, proposal.Target.ID, accepted.ID)

	w = env.do(t, "GET", "/api/v1/targets/today", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var today struct {
		ID   string `json:"id"`
		Date string `json:"date"`
	}
	decodeJSON(t, w, &today)
	assert.Equal(t, accepted.ID, today.ID)
	assert.Equal(t, time.Now().Format("2006-01-02"), today.Date)
}

func TestProposeRejectsBadDate(t *testing.T) {
	env := setupEnv(t)
	recordWeight(t, env, 80, 180)

	w := env.do(t, "POST", "/api/v1/targets/propose", map[string]any{"date": "03/15/2026"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoalShapesProposal(t *testing.T) {
	env := setupEnv(t)
	recordWeight(t, env, 80, 180)

	w := env.do(t, "POST", "/api/v1/goals", map[string]any{
		"goal_type":        "weight_loss",
		"target_weight_kg": 75,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "POST", "/api/v1/targets/propose", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var proposal struct {
		Recommendation struct {
			Reasoning string `json:"reasoning"`
			ProteinG  int    `json:"daily_protein_g"`
		} `json:"recommendation"`
	}
	decodeJSON(t, w, &proposal)
	assert.Contains(t, proposal.Recommendation.Reasoning, "deficit")
	// weight_loss protein: 2.0 g/kg at 80kg
	assert.Equal(t, 160, proposal.Recommendation.ProteinG)
}

func TestCreateGoalInvalidType(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "POST", "/api/v1/goals", map[string]any{"goal_type": "get_swole"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
