package progress

import "strings"

type Category string

const (
	CategoryAnthropometric Category = "anthropometric"
	CategoryAerobic        Category = "aerobic"
	CategorySpeed          Category = "speed"
	CategoryStrength       Category = "strength"
	CategoryCardiac        Category = "cardiac"
	CategoryJump           Category = "jump"
)

const oneRepMaxPrefix = "one_rm:"

// Metric is a tracked field of a measurement series.
type Metric struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
	// LowerIsBetter flips the sign that counts as improvement (sprint times, resting HR).
	LowerIsBetter bool `json:"lowerIsBetter"`

	field func(Measurement) (float64, bool)
}

func (m Metric) Field() func(Measurement) (float64, bool) {
	if m.field != nil {
		return m.field
	}
	key := m.Key
	return func(ms Measurement) (float64, bool) {
		v, ok := ms.Values[key]
		return v, ok
	}
}

// Change runs the differ over a sorted series for this metric.
func (m Metric) Change(series []Measurement) Change {
	return LatestAndChange(series, m.Field())
}

var registry = []Metric{
	{Key: "bodyweight", Label: "Bodyweight", Unit: "kg", Category: CategoryAnthropometric},
	{Key: "body_fat", Label: "Body fat", Unit: "%", Category: CategoryAnthropometric, LowerIsBetter: true},
	{Key: "waist", Label: "Waist", Unit: "cm", Category: CategoryAnthropometric, LowerIsBetter: true},
	{Key: "vo2max", Label: "VO2max", Unit: "ml/kg/min", Category: CategoryAerobic},
	{Key: "mas_speed", Label: "MAS speed", Unit: "km/h", Category: CategoryAerobic},
	{Key: "sprint_10m", Label: "Sprint 10m", Unit: "s", Category: CategorySpeed, LowerIsBetter: true},
	{Key: "sprint_30m", Label: "Sprint 30m", Unit: "s", Category: CategorySpeed, LowerIsBetter: true},
	{Key: "farmer_carry", Label: "Farmer carry", Unit: "kg", Category: CategoryStrength},
	{Key: "resting_hr", Label: "Resting HR", Unit: "bpm", Category: CategoryCardiac, LowerIsBetter: true},
	{Key: "max_hr", Label: "Max HR", Unit: "bpm", Category: CategoryCardiac},
	{Key: "cmj_height", Label: "Countermovement jump", Unit: "cm", Category: CategoryJump},
	{Key: "squat_jump_height", Label: "Squat jump", Unit: "cm", Category: CategoryJump},
}

var registryByKey = func() map[string]Metric {
	byKey := make(map[string]Metric, len(registry))
	for _, m := range registry {
		byKey[m.Key] = m
	}
	return byKey
}()

// Metrics returns the fixed value metrics in display order.
func Metrics() []Metric {
	out := make([]Metric, len(registry))
	copy(out, registry)
	return out
}

func LookupMetric(key string) (Metric, bool) {
	m, ok := registryByKey[key]
	return m, ok
}

// OneRepMax builds the 1RM metric for an exercise, read from the session sets.
func OneRepMax(exerciseID string) Metric {
	return Metric{
		Key:      oneRepMaxPrefix + exerciseID,
		Label:    "1RM " + exerciseID,
		Unit:     "kg",
		Category: CategoryStrength,
		field: func(m Measurement) (float64, bool) {
			return HeaviestAttempt(m.Sets, exerciseID)
		},
	}
}

// ResolveMetric accepts registry keys and "one_rm:<exercise>" keys.
func ResolveMetric(key string) (Metric, bool) {
	if exerciseID, ok := strings.CutPrefix(key, oneRepMaxPrefix); ok {
		if exerciseID == "" {
			return Metric{}, false
		}
		return OneRepMax(exerciseID), true
	}
	return LookupMetric(key)
}
