package nutrition

import "math"

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

func (a ActivityLevel) IsValid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Multiplier returns the TDEE multiplier, unknown levels count as moderate.
func (a ActivityLevel) Multiplier() float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return activityMultipliers[ActivityModerate]
}

type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalMaintenance Goal = "maintenance"
	GoalPerformance Goal = "performance"
)

func (g Goal) IsValid() bool {
	switch g {
	case GoalWeightLoss, GoalMuscleGain, GoalMaintenance, GoalPerformance:
		return true
	default:
		return false
	}
}

func (g Goal) Factor() float64 {
	switch g {
	case GoalWeightLoss:
		return 0.85
	case GoalMuscleGain:
		return 1.10
	default:
		return 1.0
	}
}

// Sex selects the BMR constant. Empty means unknown and uses the male constant.
type Sex string

const (
	SexUnspecified Sex = ""
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
)

const (
	DefaultWeightKg = 70.0
	DefaultHeightCm = 170.0
	DefaultAgeYears = 30

	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9

	proteinGramsPerKg = 2.0
	fatCaloriesShare  = 0.25
)

type AnthropometricInput struct {
	WeightKg      float64       `json:"weightKg"`
	HeightCm      float64       `json:"heightCm"`
	AgeYears      int           `json:"ageYears"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
	Sex           Sex           `json:"sex,omitempty"`
}

type MacroTargets struct {
	TotalCalories int `json:"totalCalories"`
	ProteinGrams  int `json:"proteinGrams"`
	CarbsGrams    int `json:"carbsGrams"`
	FatGrams      int `json:"fatGrams"`
	// CarbsClamped is set when protein and fat alone exceed the calorie
	// budget and the carb target was raised to zero.
	CarbsClamped bool `json:"carbsClamped,omitempty"`
}

// WithDefaults returns a copy with missing or invalid measures replaced.
func (in AnthropometricInput) WithDefaults() AnthropometricInput {
	if !validPositive(in.WeightKg) {
		in.WeightKg = DefaultWeightKg
	}
	if !validPositive(in.HeightCm) {
		in.HeightCm = DefaultHeightCm
	}
	if in.AgeYears <= 0 {
		in.AgeYears = DefaultAgeYears
	}
	return in
}

func validPositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BMR is the Mifflin-St Jeor style estimate used across the coaching app.
func BMR(in AnthropometricInput) float64 {
	in = in.WithDefaults()
	bmr := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.AgeYears)
	if in.Sex == SexFemale {
		return bmr - 161
	}
	return bmr + 5
}

func TDEE(in AnthropometricInput) float64 {
	return BMR(in) * in.ActivityLevel.Multiplier()
}

// ComputeTargets derives the daily calorie and macro targets. It never fails:
// bad measures fall back to defaults and carb underflow is clamped and flagged.
func ComputeTargets(in AnthropometricInput) MacroTargets {
	in = in.WithDefaults()

	total := int(math.Round(TDEE(in) * in.Goal.Factor()))
	protein := int(math.Round(in.WeightKg * proteinGramsPerKg))
	fat := int(math.Round(float64(total) * fatCaloriesShare / KcalPerGramFat))

	remaining := total - protein*KcalPerGramProtein - fat*KcalPerGramFat
	carbs := int(math.Round(float64(remaining) / KcalPerGramCarbs))

	targets := MacroTargets{
		TotalCalories: total,
		ProteinGrams:  protein,
		CarbsGrams:    carbs,
		FatGrams:      fat,
	}
	if carbs < 0 {
		targets.CarbsGrams = 0
		targets.CarbsClamped = true
	}
	return targets
}
