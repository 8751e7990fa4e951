package nutrition

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrPlanNotFound = errors.New("nutrition plan not found")
	ErrInvalidPlan  = errors.New("invalid nutrition plan")
)

type PlanSource string

const (
	PlanSourceManual   PlanSource = "manual"
	PlanSourceTemplate PlanSource = "template"
	PlanSourceAI       PlanSource = "ai"
)

// FoodItem is a single line item inside a meal, macros are for the given grams.
type FoodItem struct {
	Name     string  `json:"name"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type PlanMeal struct {
	Slot   MealSlot      `json:"slot"`
	Name   string        `json:"name,omitempty"`
	Target *MealTemplate `json:"target,omitempty"`
	Foods  []FoodItem    `json:"foods"`
}

type PlanDay struct {
	DayNumber int        `json:"dayNumber"`
	Meals     []PlanMeal `json:"meals"`
}

type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (m Macros) add(f FoodItem) Macros {
	return Macros{
		Calories: m.Calories + f.Calories,
		Protein:  m.Protein + f.Protein,
		Carbs:    m.Carbs + f.Carbs,
		Fat:      m.Fat + f.Fat,
	}
}

func (m PlanMeal) Totals() Macros {
	var t Macros
	for _, f := range m.Foods {
		t = t.add(f)
	}
	return t
}

// Totals rolls up every food line item of the day.
func (d PlanDay) Totals() Macros {
	var t Macros
	for _, meal := range d.Meals {
		for _, f := range meal.Foods {
			t = t.add(f)
		}
	}
	return t
}

type Plan struct {
	ID        int          `json:"id"`
	AthleteID string       `json:"athleteId"`
	Name      string       `json:"name"`
	Source    PlanSource   `json:"source"`
	Targets   MacroTargets `json:"targets"`
	Days      []PlanDay    `json:"days"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (p Plan) Validate() error {
	if p.AthleteID == "" {
		return fmt.Errorf("%w: athlete id empty", ErrInvalidPlan)
	}
	switch p.Source {
	case PlanSourceManual, PlanSourceTemplate, PlanSourceAI:
	default:
		return fmt.Errorf("%w: unknown source [%s]", ErrInvalidPlan, p.Source)
	}
	seen := make(map[int]bool, len(p.Days))
	for _, d := range p.Days {
		if d.DayNumber < 1 || d.DayNumber > DaysPerWeek {
			return fmt.Errorf("%w: day number %d out of range", ErrInvalidPlan, d.DayNumber)
		}
		if seen[d.DayNumber] {
			return fmt.Errorf("%w: day %d repeated", ErrInvalidPlan, d.DayNumber)
		}
		seen[d.DayNumber] = true
	}
	return nil
}

// PlanFromTemplate turns the weekly template into an empty plan whose meals
// carry their macro allocation as target, ready to be filled with foods.
func PlanFromTemplate(athleteID, name string, targets MacroTargets, week []DayTemplate) Plan {
	plan := Plan{
		AthleteID: athleteID,
		Name:      name,
		Source:    PlanSourceTemplate,
		Targets:   targets,
		Days:      make([]PlanDay, 0, len(week)),
	}
	for _, day := range week {
		meals := make([]PlanMeal, 0, len(day.Meals))
		for i := range day.Meals {
			target := day.Meals[i]
			meals = append(meals, PlanMeal{
				Slot:   target.Slot,
				Target: &target,
				Foods:  []FoodItem{},
			})
		}
		plan.Days = append(plan.Days, PlanDay{
			DayNumber: day.DayNumber,
			Meals:     meals,
		})
	}
	return plan
}
