package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/coachdesk/internal/telemetry/metrics"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=repo_mocks_test.go -package=nutrition_test

type plansRepo interface {
	Add(ctx context.Context, plan Plan) (*Plan, error)
	Get(ctx context.Context, id int) (*Plan, error)
	ListByAthlete(ctx context.Context, athleteID string) ([]Plan, error)
	Delete(ctx context.Context, id int) error
}

type Service struct {
	repo    plansRepo
	metrics *metrics.Manager
	now     func() time.Time
}

func NewService(repo plansRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		metrics: metricsManager,
		now:     time.Now,
	}
}

func (s *Service) ComputeTargets(ctx context.Context, in AnthropometricInput) MacroTargets {
	_, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.targets")
	defer span.End()

	targets := ComputeTargets(in)
	span.SetAttributes(
		attribute.String("goal", string(in.Goal)),
		attribute.Int("total.calories", targets.TotalCalories),
	)

	s.metrics.CounterTargetsComputed.WithLabelValues(goalLabel(in.Goal)).Inc()
	if targets.CarbsClamped {
		s.metrics.CounterCarbsClamped.Inc()
		log.Warnf("carb target clamped to 0: protein %dg and fat %dg exceed %d kcal (weight %.1f)",
			targets.ProteinGrams, targets.FatGrams, targets.TotalCalories, in.WeightKg)
	}
	return targets
}

func (s *Service) WeekTemplate(ctx context.Context, in AnthropometricInput) (MacroTargets, []DayTemplate) {
	targets := s.ComputeTargets(ctx, in)
	return targets, ExpandWeekTemplate(targets)
}

// CreateFromTemplate computes targets, expands them to a week and stores the result.
func (s *Service) CreateFromTemplate(
	ctx context.Context,
	athleteID, name string,
	in AnthropometricInput,
) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.plan.fromtemplate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	targets, week := s.WeekTemplate(ctx, in)
	return s.SavePlan(ctx, PlanFromTemplate(athleteID, name, targets, week))
}

func (s *Service) SavePlan(ctx context.Context, plan Plan) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.plan.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = s.now().UTC()
	}

	added, err := s.repo.Add(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("add plan for athlete [%s]: %w", plan.AthleteID, err)
	}
	log.Debugf("nutrition plan %d [%s] saved for athlete %s", added.ID, added.Source, added.AthleteID)
	return added, nil
}

func (s *Service) GetPlan(ctx context.Context, id int) (*Plan, error) {
	plan, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get plan %d: %w", id, err)
	}
	return plan, nil
}

func (s *Service) ListPlans(ctx context.Context, athleteID string) ([]Plan, error) {
	plans, err := s.repo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list plans of athlete [%s]: %w", athleteID, err)
	}
	return plans, nil
}

func (s *Service) DeletePlan(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete plan %d: %w", id, err)
	}
	return nil
}

func goalLabel(g Goal) string {
	if g.IsValid() {
		return string(g)
	}
	return "other"
}
