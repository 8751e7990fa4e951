//go:build integration

package test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/coachdesk/internal/nutrition"
)

func (s *IntegrationTestSuite) addAthlete(ctx context.Context, t *testing.T) string {
	athleteID := gofakeit.UUID()
	_, err := s.DB.Exec(ctx, `INSERT INTO athlete (id, name) VALUES ($1, $2);`, athleteID, gofakeit.Name())
	require.NoError(t, err)
	return athleteID
}

func (s *IntegrationTestSuite) TestNutrition() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)
	athleteID := s.addAthlete(ctx, t)

	input := nutrition.AnthropometricInput{
		WeightKg:      80,
		HeightCm:      180,
		AgeYears:      30,
		ActivityLevel: nutrition.ActivityModerate,
		Goal:          nutrition.GoalMaintenance,
	}

	t.Run("targets", func(t *testing.T) {
		var targets nutrition.MacroTargets
		doAuthRequest(ctx, t, s.httpClient, token, "POST", "/nutrition/targets", input, http.StatusOK, &targets)
		assert.Equal(t, nutrition.MacroTargets{
			TotalCalories: 2759,
			ProteinGrams:  160,
			CarbsGrams:    357,
			FatGrams:      77,
		}, targets)
	})

	t.Run("week template", func(t *testing.T) {
		var resp nutrition.WeekTemplateResponse
		doAuthRequest(ctx, t, s.httpClient, token, "POST", "/nutrition/week-template", input, http.StatusOK, &resp)
		require.Len(t, resp.Days, nutrition.DaysPerWeek)
		for i, day := range resp.Days {
			assert.Equal(t, i+1, day.DayNumber)
			assert.Len(t, day.Meals, len(nutrition.MealSlots))
		}
	})

	t.Run("plan from template, get, list, delete", func(t *testing.T) {
		var created nutrition.Plan
		doAuthRequest(ctx, t, s.httpClient, token, "POST", "/nutrition/plans/template", nutrition.CreateFromTemplateRequest{
			AthleteID: athleteID,
			Name:      "base week",
			Input:     input,
		}, http.StatusCreated, &created)
		require.NotZero(t, created.ID)
		assert.Equal(t, athleteID, created.AthleteID)
		assert.Len(t, created.Days, nutrition.DaysPerWeek)

		var fetched nutrition.Plan
		doAuthRequest(ctx, t, s.httpClient, token, "GET", fmt.Sprintf("/nutrition/plans/%d", created.ID), nil, http.StatusOK, &fetched)
		assert.Equal(t, created.Name, fetched.Name)
		assert.Equal(t, created.Targets, fetched.Targets)

		var plans []nutrition.Plan
		doAuthRequest(ctx, t, s.httpClient, token, "GET", "/nutrition/athletes/"+athleteID+"/plans", nil, http.StatusOK, &plans)
		require.Len(t, plans, 1)

		doAuthRequest(ctx, t, s.httpClient, token, "DELETE", fmt.Sprintf("/nutrition/plans/%d", created.ID), nil, http.StatusOK, nil)
		doAuthRequest(ctx, t, s.httpClient, token, "GET", fmt.Sprintf("/nutrition/plans/%d", created.ID), nil, http.StatusNotFound, nil)
	})

	t.Run("unknown athlete", func(t *testing.T) {
		doAuthRequest(ctx, t, s.httpClient, token, "POST", "/nutrition/plans/template", nutrition.CreateFromTemplateRequest{
			AthleteID: "missing-athlete",
			Input:     input,
		}, http.StatusBadRequest, nil)
	})
}
