package wizard

import (
	"slices"
	"strings"

	"github.com/2beens/coachdesk/internal/nutrition"
)

const (
	StepBody = iota
	StepActivity
	StepGoal
	StepDiet
	StepRoutine
	StepReview
)

var DietTypes = []string{"omnivore", "vegetarian", "vegan", "pescatarian", "keto", "paleo"}

// QuestionnaireData is collected by the AI nutrition plan questionnaire.
type QuestionnaireData struct {
	AthleteID string `json:"athleteId"`

	WeightKg float64       `json:"weightKg"`
	HeightCm float64       `json:"heightCm"`
	AgeYears int           `json:"ageYears"`
	Sex      nutrition.Sex `json:"sex,omitempty"`

	ActivityLevel nutrition.ActivityLevel `json:"activityLevel"`
	Goal          nutrition.Goal          `json:"goal"`

	DietType    string   `json:"dietType"`
	MealsPerDay int      `json:"mealsPerDay"`
	Allergies   []string `json:"allergies,omitempty"`
	Dislikes    []string `json:"dislikes,omitempty"`

	TrainingDaysPerWeek int    `json:"trainingDaysPerWeek"`
	Notes               string `json:"notes,omitempty"`

	Confirmed bool `json:"confirmed"`
}

func (q QuestionnaireData) Anthropometrics() nutrition.AnthropometricInput {
	return nutrition.AnthropometricInput{
		WeightKg:      q.WeightKg,
		HeightCm:      q.HeightCm,
		AgeYears:      q.AgeYears,
		ActivityLevel: q.ActivityLevel,
		Goal:          q.Goal,
		Sex:           q.Sex,
	}
}

func questionnaireStepValid(step int, q QuestionnaireData) bool {
	switch step {
	case StepBody:
		return q.WeightKg > 0 && q.HeightCm > 0 && q.AgeYears > 0 &&
			(q.Sex == "" || q.Sex == nutrition.SexMale || q.Sex == nutrition.SexFemale)
	case StepActivity:
		return q.ActivityLevel.IsValid()
	case StepGoal:
		return q.Goal.IsValid()
	case StepDiet:
		return slices.Contains(DietTypes, strings.ToLower(q.DietType)) && q.MealsPerDay >= 3 && q.MealsPerDay <= 6
	case StepRoutine:
		return q.TrainingDaysPerWeek >= 1 && q.TrainingDaysPerWeek <= 7
	case StepReview:
		return q.Confirmed
	default:
		return false
	}
}

// questionnairePatch accepts any answer change but keeps the athlete.
func questionnairePatch(current, merged QuestionnaireData) (QuestionnaireData, error) {
	merged.AthleteID = current.AthleteID
	return merged, nil
}

var Questionnaire = Definition[QuestionnaireData]{
	Kind:        KindQuestionnaire,
	StepNames:   []string{"body", "activity", "goal", "diet", "routine", "review"},
	IsStepValid: questionnaireStepValid,
	GuardPatch:  questionnairePatch,
	Initial: func(athleteID string) QuestionnaireData {
		return QuestionnaireData{AthleteID: athleteID}
	},
}
