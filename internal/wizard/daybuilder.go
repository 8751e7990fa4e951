package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/2beens/coachdesk/internal/nutrition"
)

var ErrInvalidLineItem = errors.New("invalid line item")

// DayBuilderData is the plan assembled day by day in the manual builder.
type DayBuilderData struct {
	AthleteID string              `json:"athleteId"`
	Name      string              `json:"name"`
	Days      []nutrition.PlanDay `json:"days"`
}

func newDayBuilderData(athleteID string) DayBuilderData {
	days := make([]nutrition.PlanDay, nutrition.DaysPerWeek)
	for i := range days {
		days[i] = nutrition.PlanDay{DayNumber: i + 1, Meals: []nutrition.PlanMeal{}}
	}
	return DayBuilderData{AthleteID: athleteID, Days: days}
}

func (d *DayBuilderData) day(dayNumber int) (*nutrition.PlanDay, error) {
	for i := range d.Days {
		if d.Days[i].DayNumber == dayNumber {
			return &d.Days[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no day %d", ErrInvalidLineItem, dayNumber)
}

// AddFood appends a food line item to the meal of the given slot,
// creating the meal when the day has none in that slot yet.
func (d *DayBuilderData) AddFood(dayNumber int, slot nutrition.MealSlot, food nutrition.FoodItem) error {
	if !slices.Contains(nutrition.MealSlots, slot) {
		return fmt.Errorf("%w: unknown meal slot %s", ErrInvalidLineItem, slot)
	}
	if food.Name == "" || food.Grams < 0 || food.Calories < 0 {
		return fmt.Errorf("%w: food needs a name and non negative amounts", ErrInvalidLineItem)
	}

	day, err := d.day(dayNumber)
	if err != nil {
		return err
	}
	for i := range day.Meals {
		if day.Meals[i].Slot == slot {
			day.Meals[i].Foods = append(day.Meals[i].Foods, food)
			return nil
		}
	}

	day.Meals = append(day.Meals, nutrition.PlanMeal{Slot: slot, Foods: []nutrition.FoodItem{food}})
	slices.SortStableFunc(day.Meals, func(a, b nutrition.PlanMeal) int {
		return slices.Index(nutrition.MealSlots, a.Slot) - slices.Index(nutrition.MealSlots, b.Slot)
	})
	return nil
}

// RemoveFood drops the food at index from the meal in slot; an emptied meal is removed.
func (d *DayBuilderData) RemoveFood(dayNumber int, slot nutrition.MealSlot, index int) error {
	day, err := d.day(dayNumber)
	if err != nil {
		return err
	}
	for i := range day.Meals {
		meal := &day.Meals[i]
		if meal.Slot != slot {
			continue
		}
		if index < 0 || index >= len(meal.Foods) {
			return fmt.Errorf("%w: no food %d in %s", ErrInvalidLineItem, index, slot)
		}
		meal.Foods = slices.Delete(meal.Foods, index, index+1)
		if len(meal.Foods) == 0 {
			day.Meals = slices.Delete(day.Meals, i, i+1)
		}
		return nil
	}
	return fmt.Errorf("%w: no %s on day %d", ErrInvalidLineItem, slot, dayNumber)
}

// Plan converts the builder data into a manual plan.
func (d DayBuilderData) Plan() nutrition.Plan {
	days := make([]nutrition.PlanDay, len(d.Days))
	copy(days, d.Days)
	return nutrition.Plan{
		AthleteID: d.AthleteID,
		Name:      d.Name,
		Source:    nutrition.PlanSourceManual,
		Days:      days,
	}
}

// dayBuilderPatch only lets field edits rename the plan. Days change
// through AddFood and RemoveFood, the athlete never changes.
func dayBuilderPatch(current, merged DayBuilderData) (DayBuilderData, error) {
	current.Name = merged.Name
	return current, nil
}

func dayBuilderStepNames() []string {
	names := make([]string, nutrition.DaysPerWeek)
	for i := range names {
		names[i] = "day-" + strconv.Itoa(i+1)
	}
	return names
}

var DayBuilder = Definition[DayBuilderData]{
	Kind:        KindDayBuilder,
	StepNames:   dayBuilderStepNames(),
	IsStepValid: Ungated[DayBuilderData],
	GuardPatch:  dayBuilderPatch,
	Initial:     newDayBuilderData,
}
