package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/coachdesk/internal/edge"
	"github.com/2beens/coachdesk/internal/notify"
	"github.com/2beens/coachdesk/internal/nutrition"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=wizard_test

var (
	ErrUnknownKind = errors.New("unknown wizard kind")
	ErrWrongKind   = errors.New("action not supported by this wizard")
)

type sessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type planService interface {
	ComputeTargets(ctx context.Context, in nutrition.AnthropometricInput) nutrition.MacroTargets
	SavePlan(ctx context.Context, plan nutrition.Plan) (*nutrition.Plan, error)
}

type edgeInvoker interface {
	Invoke(ctx context.Context, function string, payload any, out any) error
}

type notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

// GeneratePlanRequest is sent to the plan generation edge function.
type GeneratePlanRequest struct {
	AthleteID           string                  `json:"athleteId"`
	Goal                nutrition.Goal          `json:"goal"`
	Targets             nutrition.MacroTargets  `json:"targets"`
	WeekTemplate        []nutrition.DayTemplate `json:"weekTemplate"`
	DietType            string                  `json:"dietType"`
	MealsPerDay         int                     `json:"mealsPerDay"`
	Allergies           []string                `json:"allergies,omitempty"`
	Dislikes            []string                `json:"dislikes,omitempty"`
	TrainingDaysPerWeek int                     `json:"trainingDaysPerWeek"`
	Notes               string                  `json:"notes,omitempty"`
}

type GeneratePlanResponse struct {
	Name string              `json:"name"`
	Days []nutrition.PlanDay `json:"days"`
}

// View is what clients see of a wizard session.
type View struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	AthleteID  string          `json:"athleteId"`
	Step       int             `json:"step"`
	Steps      int             `json:"steps"`
	StepName   string          `json:"stepName"`
	IsLast     bool            `json:"isLast"`
	CanAdvance bool            `json:"canAdvance"`
	State      State           `json:"state"`
	Data       json.RawMessage `json:"data"`
	Plan       *nutrition.Plan `json:"plan,omitempty"`
}

// machine is the kind independent part of Wizard[T].
type machine interface {
	Step() int
	Steps() int
	IsLast() bool
	CanAdvance() bool
	State() State
	Next() bool
	Back()
	GoTo(step int) bool
	Submit(ctx context.Context) error
	EditJSON(patch []byte) error
	DataJSON() (json.RawMessage, error)
}

type loaded struct {
	session   *Session
	stepNames []string
	machine   machine
	days      *Wizard[DayBuilderData]
	plan      *nutrition.Plan
}

type Service struct {
	store    sessionStore
	plans    planService
	edge     edgeInvoker
	notifier notifier
	metrics  *metrics.Manager
	now      func() time.Time
	// NewID generates session ids, replaceable in tests
	NewID func() string
}

func NewService(
	store sessionStore,
	plans planService,
	edgeClient edgeInvoker,
	notifier notifier,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		store:    store,
		plans:    plans,
		edge:     edgeClient,
		notifier: notifier,
		metrics:  metricsManager,
		now:      time.Now,
		NewID:    uuid.NewString,
	}
}

func (s *Service) Open(ctx context.Context, kind Kind, athleteID string) (*View, error) {
	if athleteID == "" {
		return nil, fmt.Errorf("%w: athlete id empty", ErrInvalidPatch)
	}

	var (
		data any
		err  error
	)
	switch kind {
	case KindQuestionnaire:
		data = Questionnaire.Initial(athleteID)
	case KindDayBuilder:
		data = DayBuilder.Initial(athleteID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	now := s.now().UTC()
	session := &Session{
		ID:        s.NewID(),
		Kind:      kind,
		AthleteID: athleteID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if session.Data, err = json.Marshal(data); err != nil {
		return nil, fmt.Errorf("marshal initial data: %w", err)
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.count(kind, "open", "ok")

	l, err := s.build(session)
	if err != nil {
		return nil, err
	}
	return s.view(l)
}

func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(l)
}

func (s *Service) Next(ctx context.Context, id string) (*View, error) {
	return s.apply(ctx, id, "next", func(l *loaded) (bool, error) {
		return l.machine.Next(), nil
	})
}

// Back steps back; on the first step it cancels and discards the session.
func (s *Service) Back(ctx context.Context, id string) (*View, error) {
	return s.apply(ctx, id, "back", func(l *loaded) (bool, error) {
		l.machine.Back()
		return true, nil
	})
}

func (s *Service) GoTo(ctx context.Context, id string, step int) (*View, error) {
	return s.apply(ctx, id, "goto", func(l *loaded) (bool, error) {
		return l.machine.GoTo(step), nil
	})
}

func (s *Service) EditFields(ctx context.Context, id string, patch json.RawMessage) (*View, error) {
	return s.apply(ctx, id, "edit", func(l *loaded) (bool, error) {
		if err := l.machine.EditJSON(patch); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *Service) AddFood(ctx context.Context, id string, day int, slot nutrition.MealSlot, food nutrition.FoodItem) (*View, error) {
	return s.editDays(ctx, id, "add-food", func(d *DayBuilderData) error {
		return d.AddFood(day, slot, food)
	})
}

func (s *Service) RemoveFood(ctx context.Context, id string, day int, slot nutrition.MealSlot, index int) (*View, error) {
	return s.editDays(ctx, id, "remove-food", func(d *DayBuilderData) error {
		return d.RemoveFood(day, slot, index)
	})
}

// Submit runs the wizard's final action. On success the session is discarded
// and the view carries the stored plan.
func (s *Service) Submit(ctx context.Context, id string) (*View, error) {
	return s.apply(ctx, id, "submit", func(l *loaded) (bool, error) {
		if err := l.machine.Submit(ctx); err != nil {
			if errors.Is(err, ErrNotLastStep) || errors.Is(err, ErrStepInvalid) {
				return false, err
			}
			return false, fmt.Errorf("submit %s: %w", l.session.Kind, err)
		}
		return true, nil
	})
}

// Close discards the session without submitting.
func (s *Service) Close(ctx context.Context, id string) error {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	s.count(session.Kind, "close", "ok")
	return nil
}

func (s *Service) editDays(ctx context.Context, id, action string, fn func(d *DayBuilderData) error) (*View, error) {
	return s.apply(ctx, id, action, func(l *loaded) (bool, error) {
		if l.days == nil {
			return false, fmt.Errorf("%w: %s on %s", ErrWrongKind, action, l.session.Kind)
		}
		var editErr error
		if err := l.days.Edit(func(d *DayBuilderData) {
			editErr = fn(d)
		}); err != nil {
			return false, err
		}
		return editErr == nil, editErr
	})
}

// apply loads the session, runs the action and stores the new snapshot.
// Cancelled and submitted sessions are deleted instead.
func (s *Service) apply(
	ctx context.Context,
	id, action string,
	fn func(l *loaded) (bool, error),
) (_ *View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.wizard."+action)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("kind", string(l.session.Kind)),
		attribute.Int("step.from", l.session.Step),
	)

	ok, actionErr := fn(l)
	switch {
	case actionErr != nil:
		s.count(l.session.Kind, action, "error")
	case !ok:
		s.count(l.session.Kind, action, "blocked")
	default:
		s.count(l.session.Kind, action, string(l.machine.State()))
	}

	if state := l.machine.State(); state != StateOpen {
		if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			log.Errorf("delete %s wizard session %s: %s", state, id, err)
		}
		if actionErr != nil {
			return nil, actionErr
		}
		return s.view(l)
	}

	if actionErr != nil {
		return nil, actionErr
	}

	l.session.Step = l.machine.Step()
	if l.session.Data, err = l.machine.DataJSON(); err != nil {
		return nil, fmt.Errorf("marshal wizard data: %w", err)
	}
	l.session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, l.session); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("step.to", l.session.Step))

	return s.view(l)
}

func (s *Service) load(ctx context.Context, id string) (*loaded, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.build(session)
}

func (s *Service) build(session *Session) (*loaded, error) {
	l := &loaded{session: session}
	switch session.Kind {
	case KindQuestionnaire:
		data, err := decodeData[QuestionnaireData](session.Data)
		if err != nil {
			return nil, err
		}
		data.AthleteID = session.AthleteID
		w, err := Questionnaire.Build(data, session.Step, nil, func(ctx context.Context, q QuestionnaireData) error {
			plan, err := s.generatePlan(ctx, q)
			l.plan = plan
			return err
		})
		if err != nil {
			return nil, err
		}
		l.machine = w
		l.stepNames = Questionnaire.StepNames
	case KindDayBuilder:
		data, err := decodeData[DayBuilderData](session.Data)
		if err != nil {
			return nil, err
		}
		data.AthleteID = session.AthleteID
		w, err := DayBuilder.Build(data, session.Step, nil, func(ctx context.Context, d DayBuilderData) error {
			plan, err := s.savePlan(ctx, d.Plan())
			l.plan = plan
			return err
		})
		if err != nil {
			return nil, err
		}
		l.machine = w
		l.days = w
		l.stepNames = DayBuilder.StepNames
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, session.Kind)
	}
	return l, nil
}

func (s *Service) view(l *loaded) (*View, error) {
	data, err := l.machine.DataJSON()
	if err != nil {
		return nil, err
	}
	return &View{
		ID:         l.session.ID,
		Kind:       l.session.Kind,
		AthleteID:  l.session.AthleteID,
		Step:       l.machine.Step(),
		Steps:      l.machine.Steps(),
		StepName:   l.stepNames[l.machine.Step()],
		IsLast:     l.machine.IsLast(),
		CanAdvance: l.machine.CanAdvance(),
		State:      l.machine.State(),
		Data:       data,
		Plan:       l.plan,
	}, nil
}

func (s *Service) generatePlan(ctx context.Context, q QuestionnaireData) (*nutrition.Plan, error) {
	targets := s.plans.ComputeTargets(ctx, q.Anthropometrics())

	var resp GeneratePlanResponse
	if err := s.edge.Invoke(ctx, edge.FunctionGenerateNutritionPlan, GeneratePlanRequest{
		AthleteID:           q.AthleteID,
		Goal:                q.Goal,
		Targets:             targets,
		WeekTemplate:        nutrition.ExpandWeekTemplate(targets),
		DietType:            q.DietType,
		MealsPerDay:         q.MealsPerDay,
		Allergies:           q.Allergies,
		Dislikes:            q.Dislikes,
		TrainingDaysPerWeek: q.TrainingDaysPerWeek,
		Notes:               q.Notes,
	}, &resp); err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	name := resp.Name
	if name == "" {
		name = fmt.Sprintf("AI plan %s", s.now().UTC().Format(time.DateOnly))
	}
	plan, err := s.savePlan(ctx, nutrition.Plan{
		AthleteID: q.AthleteID,
		Name:      name,
		Source:    nutrition.PlanSourceAI,
		Targets:   targets,
		Days:      resp.Days,
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, notify.Notification{
		UserID:  q.AthleteID,
		Kind:    notify.KindPlanGenerated,
		Message: fmt.Sprintf("your nutrition plan %q is ready", plan.Name),
		Payload: map[string]int{"planId": plan.ID},
	}); err != nil {
		log.Errorf("notify plan %d generated: %s", plan.ID, err)
	}
	return plan, nil
}

func (s *Service) savePlan(ctx context.Context, plan nutrition.Plan) (*nutrition.Plan, error) {
	saved, err := s.plans.SavePlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return saved, nil
}

func (s *Service) count(kind Kind, action, outcome string) {
	s.metrics.CounterWizardTransitions.WithLabelValues(string(kind), action, outcome).Inc()
}

func decodeData[T any](raw json.RawMessage) (T, error) {
	var data T
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("decode wizard data: %w", err)
	}
	return data, nil
}
