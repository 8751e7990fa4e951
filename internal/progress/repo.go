package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/coachdesk/internal/telemetry/tracing"

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

func (r *Repo) Add(ctx context.Context, m Measurement) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.measurement.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	valuesJson, err := json.Marshal(m.Values)
	if err != nil {
		return nil, fmt.Errorf("marshal values: %w", err)
	}
	setsJson, err := json.Marshal(m.Sets)
	if err != nil {
		return nil, fmt.Errorf("marshal sets: %w", err)
	}

	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO measurement
				(athlete_id, taken_on, metric_values, sets, notes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		m.AthleteID, m.TakenOn, valuesJson, setsJson, m.Notes, m.CreatedAt,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}

	span.SetAttributes(attribute.Int("measurement.id", id))
	m.ID = id
	return &m, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.measurement.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	row := r.db.QueryRow(
		ctx,
		`SELECT id, athlete_id, taken_on, metric_values, sets, notes, created_at
			FROM measurement WHERE id = $1;`,
		id,
	)
	m, err := scanMeasurement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMeasurementNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByAthlete returns the athlete's sessions newest first; same-day sessions by id descending.
func (r *Repo) ListByAthlete(ctx context.Context, athleteID string) (_ []Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.measurement.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, athlete_id, taken_on, metric_values, sets, notes, created_at
			FROM measurement
			WHERE athlete_id = $1
			ORDER BY taken_on DESC, id DESC;`,
		athleteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var measurements []Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		measurements = append(measurements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("measurements.count", len(measurements)))
	return measurements, nil
}

// Delete removes the measurement and returns the athlete it belonged to.
func (r *Repo) Delete(ctx context.Context, id int) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.measurement.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var athleteID string
	err = r.db.QueryRow(ctx, `DELETE FROM measurement WHERE id = $1 RETURNING athlete_id;`, id).Scan(&athleteID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrMeasurementNotFound
	}
	if err != nil {
		return "", err
	}
	return athleteID, nil
}

func scanMeasurement(row pgx.Row) (*Measurement, error) {
	var (
		m          Measurement
		valuesJson []byte
		setsJson   []byte
		notes      *string
	)
	if err := row.Scan(&m.ID, &m.AthleteID, &m.TakenOn, &valuesJson, &setsJson, &notes, &m.CreatedAt); err != nil {
		return nil, err
	}
	if len(valuesJson) > 0 {
		if err := json.Unmarshal(valuesJson, &m.Values); err != nil {
			return nil, fmt.Errorf("unmarshal values of measurement %d: %w", m.ID, err)
		}
	}
	if len(setsJson) > 0 {
		if err := json.Unmarshal(setsJson, &m.Sets); err != nil {
			return nil, fmt.Errorf("unmarshal sets of measurement %d: %w", m.ID, err)
		}
	}
	if notes != nil {
		m.Notes = *notes
	}
	return &m, nil
}
