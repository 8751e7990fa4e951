package progress

// Change describes the two most recent values of a tracked field.
// Nil fields mean "no signal".
type Change struct {
	Latest        *float64 `json:"latest"`
	Previous      *float64 `json:"previous"`
	PercentChange *float64 `json:"percentChange"`
}

// LatestAndChange reads the field from the first two entries of a series
// already sorted newest first. The series is not re-sorted.
// A missing or zero previous value yields a nil PercentChange.
func LatestAndChange[T any](series []T, field func(T) (float64, bool)) Change {
	var change Change
	if len(series) == 0 {
		return change
	}

	if v, ok := field(series[0]); ok {
		change.Latest = &v
	}
	if len(series) < 2 {
		return change
	}
	if v, ok := field(series[1]); ok {
		change.Previous = &v
	}

	if change.Latest == nil || change.Previous == nil || *change.Previous == 0 {
		return change
	}
	pct := (*change.Latest - *change.Previous) / *change.Previous * 100
	change.PercentChange = &pct
	return change
}

type Trend string

const (
	TrendImproved  Trend = "improved"
	TrendDeclined  Trend = "declined"
	TrendUnchanged Trend = "unchanged"
	TrendUnknown   Trend = "unknown"
)

// Assess maps the sign of a change to a trend, honoring the metric direction.
func Assess(change Change, lowerIsBetter bool) Trend {
	if change.PercentChange == nil {
		return TrendUnknown
	}
	pct := *change.PercentChange
	switch {
	case pct == 0:
		return TrendUnchanged
	case (pct > 0) != lowerIsBetter:
		return TrendImproved
	default:
		return TrendDeclined
	}
}
