package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, plan Plan) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.plan.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	targetsJson, err := json.Marshal(plan.Targets)
	if err != nil {
		return nil, fmt.Errorf("marshal targets: %w", err)
	}
	daysJson, err := json.Marshal(plan.Days)
	if err != nil {
		return nil, fmt.Errorf("marshal days: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO nutrition_plan (athlete_id, name, source, targets, days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`,
		plan.AthleteID, plan.Name, plan.Source, targetsJson, daysJson, plan.CreatedAt,
	).Scan(&plan.ID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: unknown athlete [%s]", ErrInvalidPlan, plan.AthleteID)
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("plan.id", plan.ID))
	return &plan, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.plan.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	row := r.db.QueryRow(ctx, `
		SELECT id, athlete_id, name, source, targets, days, created_at
		FROM nutrition_plan
		WHERE id = $1;
	`, id)
	plan, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *Repo) ListByAthlete(ctx context.Context, athleteID string) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.plan.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	rows, err := r.db.Query(ctx, `
		SELECT id, athlete_id, name, source, targets, days, created_at
		FROM nutrition_plan
		WHERE athlete_id = $1
		ORDER BY created_at DESC, id DESC;
	`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]Plan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.plan.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM nutrition_plan WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func scanPlan(row pgx.Row) (*Plan, error) {
	var (
		plan        Plan
		targetsJson []byte
		daysJson    []byte
	)
	if err := row.Scan(
		&plan.ID, &plan.AthleteID, &plan.Name, &plan.Source,
		&targetsJson, &daysJson, &plan.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(targetsJson, &plan.Targets); err != nil {
		return nil, fmt.Errorf("unmarshal targets of plan %d: %w", plan.ID, err)
	}
	if err := json.Unmarshal(daysJson, &plan.Days); err != nil {
		return nil, fmt.Errorf("unmarshal days of plan %d: %w", plan.ID, err)
	}
	return &plan, nil
}
