package wizard

import (
	"context"
)

type Kind string

const (
	KindQuestionnaire Kind = "ai-questionnaire"
	KindDayBuilder    Kind = "day-builder"
)

func (k Kind) IsValid() bool {
	return k == KindQuestionnaire || k == KindDayBuilder
}

// Definition describes one concrete wizard: its steps, gating and initial data.
type Definition[T any] struct {
	Kind        Kind
	StepNames   []string
	IsStepValid Validator[T]
	GuardPatch  PatchGuard[T]
	Initial     func(athleteID string) T
}

func (d Definition[T]) Steps() int {
	return len(d.StepNames)
}

// Build creates a wizard over data, positioned on step.
func (d Definition[T]) Build(
	data T,
	step int,
	onCancel func(),
	onSubmit func(ctx context.Context, data T) error,
) (*Wizard[T], error) {
	w, err := New(Config[T]{
		Steps:       d.Steps(),
		Data:        data,
		IsStepValid: d.IsStepValid,
		GuardPatch:  d.GuardPatch,
		OnCancel:    onCancel,
		OnSubmit:    onSubmit,
	})
	if err != nil {
		return nil, err
	}
	if err := w.Restore(step); err != nil {
		return nil, err
	}
	return w, nil
}
