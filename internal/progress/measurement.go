package progress

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrInvalidMeasurement  = errors.New("invalid measurement")
)

// Set is a single attempt of a strength exercise within a session.
type Set struct {
	ExerciseID string  `json:"exerciseId"`
	Kilos      float64 `json:"kilos"`
	Reps       int     `json:"reps"`
}

// Measurement is one test session of an athlete. Values are keyed by metric key.
type Measurement struct {
	ID        int                `json:"id"`
	AthleteID string             `json:"athleteId"`
	TakenOn   time.Time          `json:"takenOn"`
	Values    map[string]float64 `json:"values"`
	Sets      []Set              `json:"sets,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (m Measurement) Validate() error {
	if m.AthleteID == "" {
		return fmt.Errorf("%w: athlete id empty", ErrInvalidMeasurement)
	}
	if m.TakenOn.IsZero() {
		return fmt.Errorf("%w: test date missing", ErrInvalidMeasurement)
	}
	if len(m.Values) == 0 && len(m.Sets) == 0 {
		return fmt.Errorf("%w: no values recorded", ErrInvalidMeasurement)
	}
	for key := range m.Values {
		if _, ok := LookupMetric(key); !ok {
			return fmt.Errorf("%w: unknown metric %s", ErrInvalidMeasurement, key)
		}
	}
	for _, s := range m.Sets {
		if strings.TrimSpace(s.ExerciseID) == "" {
			return fmt.Errorf("%w: set without exercise", ErrInvalidMeasurement)
		}
	}
	return nil
}

// SortSeries orders measurements newest first. Entries sharing a test date
// are ordered by ID descending, so the later insert comes first.
func SortSeries(series []Measurement) {
	sort.SliceStable(series, func(i, j int) bool {
		di, dj := civilDate(series[i].TakenOn), civilDate(series[j].TakenOn)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return series[i].ID > series[j].ID
	})
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HeaviestAttempt returns the heaviest weight attempted for the exercise,
// used as the session's 1RM estimate.
func HeaviestAttempt(sets []Set, exerciseID string) (float64, bool) {
	var (
		best  float64
		found bool
	)
	for _, s := range sets {
		if s.ExerciseID != exerciseID || s.Kilos <= 0 {
			continue
		}
		if !found || s.Kilos > best {
			best = s.Kilos
			found = true
		}
	}
	return best, found
}

// Exercises lists the distinct exercises with sets across the series, in first-seen order.
func Exercises(series []Measurement) []string {
	seen := make(map[string]bool)
	var exercises []string
	for _, m := range series {
		for _, s := range m.Sets {
			if seen[s.ExerciseID] {
				continue
			}
			seen[s.ExerciseID] = true
			exercises = append(exercises, s.ExerciseID)
		}
	}
	return exercises
}
