package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotLastStep  = errors.New("submit is only available on the last step")
	ErrStepInvalid  = errors.New("current step is not valid")
	ErrClosed       = errors.New("wizard is closed")
	ErrStepOutRange = errors.New("step out of range")
	ErrInvalidPatch = errors.New("invalid wizard data patch")
)

type State string

const (
	StateOpen      State = "open"
	StateCancelled State = "cancelled"
	StateSubmitted State = "submitted"
)

// Validator reports whether the data allows leaving the given step.
type Validator[T any] func(step int, data T) bool

// PatchGuard decides what a JSON patch may change: it gets the data before
// and after the merge and returns the data to keep.
type PatchGuard[T any] func(current, merged T) (T, error)

// Ungated accepts every step, for tab-like wizards with free navigation.
func Ungated[T any](int, T) bool {
	return true
}

type Config[T any] struct {
	Steps       int
	Data        T
	IsStepValid Validator[T]
	GuardPatch  PatchGuard[T]
	OnCancel    func()
	OnSubmit    func(ctx context.Context, data T) error
}

// Wizard is a linear step machine over steps 0..N-1. Invalid moves are
// no-ops, not errors.
type Wizard[T any] struct {
	steps    int
	current  int
	data     T
	state    State
	isValid  Validator[T]
	guard    PatchGuard[T]
	onCancel func()
	onSubmit func(ctx context.Context, data T) error
}

func New[T any](cfg Config[T]) (*Wizard[T], error) {
	if cfg.Steps < 1 {
		return nil, fmt.Errorf("wizard needs at least one step, got %d", cfg.Steps)
	}
	isValid := cfg.IsStepValid
	if isValid == nil {
		isValid = Ungated[T]
	}
	return &Wizard[T]{
		steps:    cfg.Steps,
		data:     cfg.Data,
		state:    StateOpen,
		isValid:  isValid,
		guard:    cfg.GuardPatch,
		onCancel: cfg.OnCancel,
		onSubmit: cfg.OnSubmit,
	}, nil
}

func (w *Wizard[T]) Step() int    { return w.current }
func (w *Wizard[T]) Steps() int   { return w.steps }
func (w *Wizard[T]) Data() T      { return w.data }
func (w *Wizard[T]) State() State { return w.state }
func (w *Wizard[T]) IsLast() bool { return w.current == w.steps-1 }

// CanAdvance reports whether the current step is valid, i.e. Next or Submit would proceed.
func (w *Wizard[T]) CanAdvance() bool {
	return w.state == StateOpen && w.isValid(w.current, w.data)
}

// Next moves one step forward. It reports false and stays put when the
// current step is invalid, the wizard is on its last step or closed.
func (w *Wizard[T]) Next() bool {
	if !w.CanAdvance() || w.IsLast() {
		return false
	}
	w.current++
	return true
}

// Back moves one step back; on the first step it cancels the wizard.
func (w *Wizard[T]) Back() {
	if w.state != StateOpen {
		return
	}
	if w.current == 0 {
		w.state = StateCancelled
		if w.onCancel != nil {
			w.onCancel()
		}
		return
	}
	w.current--
}

// GoTo jumps to a step. Backward jumps are always allowed; forward jumps
// need every step left behind to be valid.
func (w *Wizard[T]) GoTo(step int) bool {
	if w.state != StateOpen || step < 0 || step >= w.steps {
		return false
	}
	for s := w.current; s < step; s++ {
		if !w.isValid(s, w.data) {
			return false
		}
	}
	w.current = step
	return true
}

// Edit mutates the form data without changing the step.
func (w *Wizard[T]) Edit(fn func(data *T)) error {
	if w.state != StateOpen {
		return ErrClosed
	}
	fn(&w.data)
	return nil
}

// Submit runs the submit action on the last step. The wizard stays open
// when the action fails, so it can be retried.
func (w *Wizard[T]) Submit(ctx context.Context) error {
	switch {
	case w.state != StateOpen:
		return ErrClosed
	case !w.IsLast():
		return ErrNotLastStep
	case !w.isValid(w.current, w.data):
		return ErrStepInvalid
	}

	if w.onSubmit != nil {
		if err := w.onSubmit(ctx, w.data); err != nil {
			return err
		}
	}
	w.state = StateSubmitted
	return nil
}

// Restore puts the wizard on a previously saved step.
func (w *Wizard[T]) Restore(step int) error {
	if step < 0 || step >= w.steps {
		return fmt.Errorf("%w: %d", ErrStepOutRange, step)
	}
	w.current = step
	return nil
}

// EditJSON merges a JSON object into the form data, filtered through the
// patch guard. The data is left untouched when the patch does not decode
// or the guard rejects it.
func (w *Wizard[T]) EditJSON(patch []byte) error {
	if w.state != StateOpen {
		return ErrClosed
	}
	current, err := json.Marshal(w.data)
	if err != nil {
		return err
	}
	var merged T
	if err := json.Unmarshal(current, &merged); err != nil {
		return err
	}
	if err := json.Unmarshal(patch, &merged); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}
	if w.guard != nil {
		if merged, err = w.guard(w.data, merged); err != nil {
			return err
		}
	}
	return w.Edit(func(data *T) {
		*data = merged
	})
}

func (w *Wizard[T]) DataJSON() (json.RawMessage, error) {
	return json.Marshal(w.data)
}
