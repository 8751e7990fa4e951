//go:build integration

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/coachdesk/internal/nutrition"
	"github.com/2beens/coachdesk/internal/wizard"
)

func (s *IntegrationTestSuite) TestWizard_DayBuilder() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)
	athleteID := s.addAthlete(ctx, t)

	var view wizard.View
	doAuthRequest(ctx, t, s.httpClient, token, "POST", "/wizards/day-builder", wizard.OpenRequest{AthleteID: athleteID}, http.StatusCreated, &view)
	require.NotEmpty(t, view.ID)
	assert.Equal(t, wizard.KindDayBuilder, view.Kind)
	assert.Equal(t, nutrition.DaysPerWeek, view.Steps)
	sessionPath := "/wizards/session/" + view.ID

	doAuthRequest(ctx, t, s.httpClient, token, "POST", sessionPath+"/days/1/foods", wizard.AddFoodRequest{
		Slot: nutrition.MealBreakfast,
		Food: nutrition.FoodItem{Name: "oats", Grams: 80, Calories: 300, Protein: 10, Carbs: 54, Fat: 6},
	}, http.StatusOK, &view)

	// submitting is only possible from the last tab
	doAuthRequest(ctx, t, s.httpClient, token, "POST", sessionPath+"/submit", nil, http.StatusConflict, nil)

	doAuthRequest(ctx, t, s.httpClient, token, "POST", fmt.Sprintf("%s/goto/%d", sessionPath, nutrition.DaysPerWeek-1), nil, http.StatusOK, &view)
	require.True(t, view.IsLast)

	doAuthRequest(ctx, t, s.httpClient, token, "POST", sessionPath+"/submit", nil, http.StatusOK, &view)
	assert.Equal(t, wizard.StateSubmitted, view.State)
	require.NotNil(t, view.Plan)
	require.NotZero(t, view.Plan.ID)

	// the session is gone once submitted
	doAuthRequest(ctx, t, s.httpClient, token, "GET", sessionPath, nil, http.StatusNotFound, nil)

	var plan nutrition.Plan
	doAuthRequest(ctx, t, s.httpClient, token, "GET", fmt.Sprintf("/nutrition/plans/%d", view.Plan.ID), nil, http.StatusOK, &plan)
	assert.Equal(t, nutrition.PlanSourceManual, plan.Source)
	require.NotEmpty(t, plan.Days)
}

func (s *IntegrationTestSuite) TestWizard_QuestionnaireClose() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	var view wizard.View
	doAuthRequest(ctx, t, s.httpClient, token, "POST", "/wizards/ai-questionnaire", wizard.OpenRequest{AthleteID: "athlete-1"}, http.StatusCreated, &view)
	assert.Equal(t, 0, view.Step)
	assert.False(t, view.CanAdvance)

	doAuthRequest(ctx, t, s.httpClient, token, "POST", "/wizards/not-a-wizard", wizard.OpenRequest{AthleteID: "athlete-1"}, http.StatusNotFound, nil)

	var closed map[string]string
	doAuthRequest(ctx, t, s.httpClient, token, "DELETE", "/wizards/session/"+view.ID, nil, http.StatusOK, &closed)
	assert.Equal(t, view.ID, closed["closedId"])
	doAuthRequest(ctx, t, s.httpClient, token, "GET", "/wizards/session/"+view.ID, nil, http.StatusNotFound, nil)
}
