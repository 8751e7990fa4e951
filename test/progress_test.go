//go:build integration

package test

import (
	"context"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/coachdesk/internal/progress"
)

func (s *IntegrationTestSuite) TestProgressDashboard() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)
	athleteID := s.addAthlete(ctx, t)

	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, m := range []progress.Measurement{
		{AthleteID: athleteID, TakenOn: first, Values: map[string]float64{"bodyweight": 80, "sprint_10m": 1.90}},
		{AthleteID: athleteID, TakenOn: first.AddDate(0, 1, 0), Values: map[string]float64{"bodyweight": 78, "sprint_10m": 1.80}},
	} {
		var added progress.Measurement
		doAuthRequest(ctx, t, s.httpClient, token, "POST", "/progress/measurements", m, http.StatusCreated, &added)
		require.NotZero(t, added.ID, "measurement %d", i)
	}

	var dashboard progress.Dashboard
	doAuthRequest(ctx, t, s.httpClient, token, "GET", "/progress/athletes/"+athleteID+"/dashboard", nil, http.StatusOK, &dashboard)
	assert.Equal(t, 2, dashboard.Sessions)

	entries := map[string]progress.DashboardEntry{}
	for _, e := range dashboard.Entries {
		entries[e.Metric.Key] = e
	}

	sprint, ok := entries["sprint_10m"]
	require.True(t, ok)
	require.NotNil(t, sprint.Latest)
	require.NotNil(t, sprint.Previous)
	assert.InDelta(t, 1.80, *sprint.Latest, 0.0001)
	assert.InDelta(t, 1.90, *sprint.Previous, 0.0001)
	// faster sprint is an improvement
	assert.Equal(t, progress.TrendImproved, sprint.Trend)

	// unknown metrics are rejected
	doAuthRequest(ctx, t, s.httpClient, token, "POST", "/progress/measurements", progress.Measurement{
		AthleteID: athleteID,
		TakenOn:   first,
		Values:    map[string]float64{"not_a_metric": 1},
	}, http.StatusBadRequest, nil)
}
