package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/google/uuid"
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

func (r *Repo) SaveSection(ctx context.Context, section Section) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.booking.section.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("section.id", section.ID))

	slotsJson, err := json.Marshal(section.Slots)
	if err != nil {
		return fmt.Errorf("marshal slots: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO section (id, name, slots, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, slots = EXCLUDED.slots;`,
		section.ID, section.Name, slotsJson, section.CreatedAt,
	)
	return err
}

func (r *Repo) GetSection(ctx context.Context, id string) (_ *Section, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.booking.section.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("section.id", id))

	section, err := scanSection(r.db.QueryRow(
		ctx,
		`SELECT id, name, slots, created_at FROM section WHERE id = $1;`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return section, nil
}

func (r *Repo) ListSections(ctx context.Context) (_ []Section, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.booking.section.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name, slots, created_at FROM section ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sections = append(sections, *section)
	}
	return sections, rows.Err()
}

func (r *Repo) GetAssignment(ctx context.Context, userID string) (_ *Assignment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.booking.assignment.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a := &Assignment{}
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, section_id, valid_until, updated_at FROM section_assignment WHERE user_id = $1;`,
		userID,
	).Scan(&a.UserID, &a.SectionID, &a.ValidUntil, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAssignments returns assignments whose subscription has not ended by activeOn.
func (r *Repo) ListAssignments(ctx context.Context, activeOn time.Time) (_ []Assignment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.booking.assignment.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, section_id, valid_until, updated_at
			FROM section_assignment
			WHERE valid_until >= $1
			ORDER BY user_id;`,
		activeOn,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.UserID, &a.SectionID, &a.ValidUntil, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ReplaceFutureBookings deletes the user's rows dated from onwards and inserts
// the new rows, in one transaction. A nil assignment removes the user's section.
func (r *Repo) ReplaceFutureBookings(
	ctx context.Context,
	userID string,
	from time.Time,
	assignment *Assignment,
	rows []Row,
) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.booking.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("rows", len(rows)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if assignment == nil {
		if _, err = tx.Exec(ctx, `DELETE FROM section_assignment WHERE user_id = $1;`, userID); err != nil {
			return 0, fmt.Errorf("delete assignment: %w", err)
		}
	} else {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO section_assignment (user_id, section_id, valid_until, updated_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (user_id) DO UPDATE
				SET section_id = EXCLUDED.section_id, valid_until = EXCLUDED.valid_until, updated_at = EXCLUDED.updated_at;`,
			userID, assignment.SectionID, assignment.ValidUntil, assignment.UpdatedAt,
		); err != nil {
			return 0, fmt.Errorf("upsert assignment: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM booking WHERE user_id = $1 AND date >= $2;`, userID, from)
	if err != nil {
		return 0, fmt.Errorf("delete future bookings: %w", err)
	}
	span.SetAttributes(attribute.Int64("rows.deleted", tag.RowsAffected()))

	if len(rows) == 0 {
		return 0, nil
	}

	inserted, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"booking"},
		[]string{"id", "user_id", "section_id", "date", "slot_time", "status"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			if row.ID == uuid.Nil {
				row.ID = uuid.New()
			}
			return []any{row.ID, row.UserID, row.SectionID, row.Date, row.Time, row.Status}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("insert bookings: %w", err)
	}

	return int(inserted), nil
}

func (r *Repo) ListUpcoming(ctx context.Context, userID string, from time.Time) (_ []Row, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.booking.upcoming")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, section_id, date, slot_time, status
			FROM booking
			WHERE user_id = $1 AND date >= $2
			ORDER BY date, slot_time;`,
		userID, from,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Row
	for rows.Next() {
		var b Row
		if err := rows.Scan(&b.ID, &b.UserID, &b.SectionID, &b.Date, &b.Time, &b.Status); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanSection(row pgx.Row) (*Section, error) {
	var (
		s         Section
		slotsJson []byte
	)
	if err := row.Scan(&s.ID, &s.Name, &slotsJson, &s.CreatedAt); err != nil {
		return nil, err
	}
	if len(slotsJson) > 0 {
		if err := json.Unmarshal(slotsJson, &s.Slots); err != nil {
			return nil, fmt.Errorf("unmarshal slots of section %s: %w", s.ID, err)
		}
	}
	return &s, nil
}
