package progress

import "time"

type DashboardEntry struct {
	Metric Metric `json:"metric"`
	Change
	Trend Trend `json:"trend"`
	// Sessions counts the sessions where the metric was recorded.
	Sessions int `json:"sessions"`
}

type Dashboard struct {
	AthleteID    string           `json:"athleteId"`
	Sessions     int              `json:"sessions"`
	LastTestedOn *time.Time       `json:"lastTestedOn,omitempty"`
	Entries      []DashboardEntry `json:"entries"`
	GeneratedAt  time.Time        `json:"generatedAt"`
}

// MetricSeries keeps only the sessions where the metric was recorded,
// preserving the input order.
func MetricSeries(series []Measurement, metric Metric) []Measurement {
	field := metric.Field()
	var filtered []Measurement
	for _, m := range series {
		if _, ok := field(m); ok {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// MetricChange sorts a copy of the series and diffs the two latest sessions
// that recorded the metric.
func MetricChange(series []Measurement, metric Metric) (Change, int) {
	sorted := make([]Measurement, len(series))
	copy(sorted, series)
	SortSeries(sorted)
	recorded := MetricSeries(sorted, metric)
	return metric.Change(recorded), len(recorded)
}

// BuildDashboard computes the change and trend of every tracked metric,
// plus a 1RM entry per exercise found in the sets.
func BuildDashboard(athleteID string, series []Measurement, now time.Time) Dashboard {
	sorted := make([]Measurement, len(series))
	copy(sorted, series)
	SortSeries(sorted)

	dashboard := Dashboard{
		AthleteID:   athleteID,
		Sessions:    len(sorted),
		Entries:     []DashboardEntry{},
		GeneratedAt: now,
	}
	if len(sorted) > 0 {
		last := sorted[0].TakenOn
		dashboard.LastTestedOn = &last
	}

	metrics := Metrics()
	for _, exerciseID := range Exercises(sorted) {
		metrics = append(metrics, OneRepMax(exerciseID))
	}

	for _, metric := range metrics {
		recorded := MetricSeries(sorted, metric)
		if len(recorded) == 0 {
			continue
		}
		change := metric.Change(recorded)
		dashboard.Entries = append(dashboard.Entries, DashboardEntry{
			Metric:   metric,
			Change:   change,
			Trend:    Assess(change, metric.LowerIsBetter),
			Sessions: len(recorded),
		})
	}

	return dashboard
}
