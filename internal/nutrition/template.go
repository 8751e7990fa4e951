package nutrition

import "math"

type MealSlot string

const (
	MealBreakfast      MealSlot = "breakfast"
	MealMorningSnack   MealSlot = "morning_snack"
	MealLunch          MealSlot = "lunch"
	MealAfternoonSnack MealSlot = "afternoon_snack"
	MealDinner         MealSlot = "dinner"
)

// MealSlots is the fixed order of meals in every day.
var MealSlots = []MealSlot{
	MealBreakfast,
	MealMorningSnack,
	MealLunch,
	MealAfternoonSnack,
	MealDinner,
}

const DaysPerWeek = 7

type MealTemplate struct {
	Slot     MealSlot `json:"slot"`
	Calories int      `json:"calories"`
	Protein  int      `json:"protein"`
	Carbs    int      `json:"carbs"`
	Fat      int      `json:"fat"`
}

type DayTemplate struct {
	DayNumber     int            `json:"dayNumber"`
	TotalCalories int            `json:"totalCalories"`
	TotalProtein  int            `json:"totalProtein"`
	TotalCarbs    int            `json:"totalCarbs"`
	TotalFat      int            `json:"totalFat"`
	Meals         []MealTemplate `json:"meals"`
}

// ExpandWeekTemplate spreads the daily targets over 7 identical days of 5 meals.
// Every macro is split evenly and rounded per meal, so meal sums may drift
// from the day total by a few units.
func ExpandWeekTemplate(t MacroTargets) []DayTemplate {
	perMeal := func(total int) int {
		return int(math.Round(float64(total) / float64(len(MealSlots))))
	}

	days := make([]DayTemplate, 0, DaysPerWeek)
	for day := 1; day <= DaysPerWeek; day++ {
		meals := make([]MealTemplate, 0, len(MealSlots))
		for _, slot := range MealSlots {
			meals = append(meals, MealTemplate{
				Slot:     slot,
				Calories: perMeal(t.TotalCalories),
				Protein:  perMeal(t.ProteinGrams),
				Carbs:    perMeal(t.CarbsGrams),
				Fat:      perMeal(t.FatGrams),
			})
		}
		days = append(days, DayTemplate{
			DayNumber:     day,
			TotalCalories: t.TotalCalories,
			TotalProtein:  t.ProteinGrams,
			TotalCarbs:    t.CarbsGrams,
			TotalFat:      t.FatGrams,
			Meals:         meals,
		})
	}
	return days
}
