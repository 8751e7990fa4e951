//go:build integration

package test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/coachdesk/internal/booking"
)

func (s *IntegrationTestSuite) TestBooking() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)
	sectionID := "morning-" + gofakeit.LetterN(6)
	userID := gofakeit.UUID()

	t.Run("expand dry run", func(t *testing.T) {
		var rows []booking.Row
		doAuthRequest(ctx, t, s.httpClient, token, "POST", "/booking/expand", booking.ExpandRequest{
			UserID:    userID,
			SectionID: sectionID,
			Start:     "2024-01-01",
			End:       "2024-01-07",
			Slots:     map[string][]string{"monday": {"18:00", "07:00", "07:00"}},
		}, http.StatusOK, &rows)

		require.Len(t, rows, 2)
		assert.Equal(t, "07:00", rows[0].Time)
		assert.Equal(t, "18:00", rows[1].Time)
		assert.Equal(t, booking.StatusConfirmed, rows[0].Status)
	})

	t.Run("assign, list, deassign", func(t *testing.T) {
		var section booking.Section
		doAuthRequest(ctx, t, s.httpClient, token, "PUT", "/booking/sections/"+sectionID, booking.Section{
			Name: "Morning group",
			Slots: map[string][]string{
				"monday":   {"07:00"},
				"thursday": {"07:00", "18:30"},
			},
		}, http.StatusOK, &section)
		assert.Equal(t, sectionID, section.ID)

		sid := sectionID
		var assigned booking.AssignResult
		doAuthRequest(ctx, t, s.httpClient, token, "PUT", "/booking/users/"+userID+"/section", booking.AssignRequest{
			SectionID: &sid,
		}, http.StatusOK, &assigned)
		require.Positive(t, assigned.Rows)

		var upcoming []booking.Row
		doAuthRequest(ctx, t, s.httpClient, token, "GET", "/booking/users/"+userID, nil, http.StatusOK, &upcoming)
		require.Len(t, upcoming, assigned.Rows)

		today := booking.CivilDate(time.Now().UTC())
		for _, row := range upcoming {
			assert.False(t, row.Date.Before(today))
			assert.Contains(t, []time.Weekday{time.Monday, time.Thursday}, row.Date.Weekday())
		}

		// assigning again replaces future rows instead of adding to them
		doAuthRequest(ctx, t, s.httpClient, token, "PUT", "/booking/users/"+userID+"/section", booking.AssignRequest{
			SectionID: &sid,
		}, http.StatusOK, &assigned)
		doAuthRequest(ctx, t, s.httpClient, token, "GET", "/booking/users/"+userID, nil, http.StatusOK, &upcoming)
		require.Len(t, upcoming, assigned.Rows)

		doAuthRequest(ctx, t, s.httpClient, token, "PUT", "/booking/users/"+userID+"/section", booking.AssignRequest{}, http.StatusOK, nil)
		doAuthRequest(ctx, t, s.httpClient, token, "GET", "/booking/users/"+userID, nil, http.StatusOK, &upcoming)
		assert.Empty(t, upcoming)
	})
}
