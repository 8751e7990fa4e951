package booking

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrInvalidSlotMap = errors.New("invalid slot map")

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekdaySlotMap holds the start times ("HH:MM") a section runs on each weekday.
type WeekdaySlotMap map[time.Weekday][]string

// ParseSlotMap validates a weekday name -> times map, as stored with a section.
// Times are rewritten to zero padded HH:MM, then deduplicated and sorted.
func ParseSlotMap(raw map[string][]string) (WeekdaySlotMap, error) {
	slots := make(WeekdaySlotMap, len(raw))
	for name, times := range raw {
		weekday, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday [%s]", ErrInvalidSlotMap, name)
		}
		canonical := make([]string, 0, len(times))
		for _, t := range times {
			parsed, err := time.Parse("15:04", t)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid time [%s] on %s", ErrInvalidSlotMap, t, name)
			}
			canonical = append(canonical, parsed.Format("15:04"))
		}
		slots[weekday] = normalizeTimes(append(slots[weekday], canonical...))
	}
	return slots, nil
}

// Times returns the sorted, unique slot times of the weekday.
func (m WeekdaySlotMap) Times(d time.Weekday) []string {
	return normalizeTimes(m[d])
}

// Raw converts back to the weekday name keyed form.
func (m WeekdaySlotMap) Raw() map[string][]string {
	raw := make(map[string][]string, len(m))
	for d, times := range m {
		raw[strings.ToLower(d.String())] = normalizeTimes(times)
	}
	return raw
}

func normalizeTimes(times []string) []string {
	if len(times) == 0 {
		return nil
	}
	out := slices.Clone(times)
	slices.Sort(out)
	return slices.Compact(out)
}
