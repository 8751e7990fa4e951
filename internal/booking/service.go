package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/coachdesk/internal/notify"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=booking_test

// DefaultHorizon is used when an assignment comes without a subscription end.
const DefaultHorizon = 28 * 24 * time.Hour

// MaxPreviewDays bounds the inclusive date range of a preview expansion.
const MaxPreviewDays = 366

var ErrPreviewWindowTooLarge = errors.New("preview window too large")

type bookingsRepo interface {
	SaveSection(ctx context.Context, section Section) error
	GetSection(ctx context.Context, id string) (*Section, error)
	ListSections(ctx context.Context) ([]Section, error)
	GetAssignment(ctx context.Context, userID string) (*Assignment, error)
	ListAssignments(ctx context.Context, activeOn time.Time) ([]Assignment, error)
	ReplaceFutureBookings(ctx context.Context, userID string, from time.Time, assignment *Assignment, rows []Row) (int, error)
	ListUpcoming(ctx context.Context, userID string, from time.Time) ([]Row, error)
}

type notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

type AssignResult struct {
	UserID    string    `json:"userId"`
	SectionID string    `json:"sectionId,omitempty"`
	From      time.Time `json:"from"`
	Until     time.Time `json:"until"`
	Rows      int       `json:"rows"`
}

type RenewalReport struct {
	Assignments int           `json:"assignments"`
	Rows        int           `json:"rows"`
	Failed      int           `json:"failed"`
	Took        time.Duration `json:"took"`
}

type Service struct {
	repo     bookingsRepo
	notifier notifier
	metrics  *metrics.Manager

	// NowFunc can be replaced to pin "today" in tests
	NowFunc func() time.Time
}

func NewService(repo bookingsRepo, notifier notifier, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		metrics:  metricsManager,
		NowFunc:  time.Now,
	}
}

func (s *Service) SaveSection(ctx context.Context, section Section) error {
	if section.ID == "" || section.Name == "" {
		return fmt.Errorf("%w: section id and name required", ErrInvalidAssignment)
	}
	if _, err := ParseSlotMap(section.Slots); err != nil {
		return err
	}
	if section.CreatedAt.IsZero() {
		section.CreatedAt = s.NowFunc().UTC()
	}
	if err := s.repo.SaveSection(ctx, section); err != nil {
		return fmt.Errorf("save section [%s]: %w", section.ID, err)
	}
	return nil
}

func (s *Service) ListSections(ctx context.Context) ([]Section, error) {
	return s.repo.ListSections(ctx)
}

// AssignSection replaces every booking of the user from today onwards with the
// expansion of the section schedule through validUntil.
func (s *Service) AssignSection(
	ctx context.Context,
	userID, sectionID string,
	validUntil time.Time,
) (_ *AssignResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.booking.assign")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("section.id", sectionID),
	)

	if userID == "" || sectionID == "" {
		return nil, fmt.Errorf("%w: user and section required", ErrInvalidAssignment)
	}

	now := s.NowFunc().UTC()
	today := CivilDate(now)
	if validUntil.IsZero() {
		validUntil = today.Add(DefaultHorizon)
	}
	validUntil = CivilDate(validUntil)

	section, err := s.repo.GetSection(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("get section [%s]: %w", sectionID, err)
	}

	inserted, err := s.replace(ctx, *section, Assignment{
		UserID:     userID,
		SectionID:  sectionID,
		ValidUntil: validUntil,
		UpdatedAt:  now,
	}, today)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, notify.Notification{
		UserID:  userID,
		Kind:    notify.KindSectionAssigned,
		Message: fmt.Sprintf("you are booked into %s until %s", section.Name, validUntil.Format(time.DateOnly)),
	}); err != nil {
		log.Errorf("notify section assigned to %s: %s", userID, err)
	}

	return &AssignResult{
		UserID:    userID,
		SectionID: sectionID,
		From:      today,
		Until:     validUntil,
		Rows:      inserted,
	}, nil
}

// DeassignSection drops the user's section and deletes all future bookings.
func (s *Service) DeassignSection(ctx context.Context, userID string) (_ *AssignResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.booking.deassign")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, fmt.Errorf("%w: user required", ErrInvalidAssignment)
	}

	today := CivilDate(s.NowFunc().UTC())
	if _, err := s.repo.ReplaceFutureBookings(ctx, userID, today, nil, nil); err != nil {
		return nil, fmt.Errorf("delete future bookings of [%s]: %w", userID, err)
	}
	log.Debugf("section of user %s removed, future bookings deleted", userID)

	return &AssignResult{
		UserID: userID,
		From:   today,
	}, nil
}

func (s *Service) Upcoming(ctx context.Context, userID string) ([]Row, error) {
	rows, err := s.repo.ListUpcoming(ctx, userID, CivilDate(s.NowFunc().UTC()))
	if err != nil {
		return nil, fmt.Errorf("list upcoming bookings of [%s]: %w", userID, err)
	}
	return rows, nil
}

// Preview expands a schedule without touching storage.
func (s *Service) Preview(userID, sectionID string, start, end time.Time, rawSlots map[string][]string) ([]Row, error) {
	slots, err := ParseSlotMap(rawSlots)
	if err != nil {
		return nil, err
	}
	// Sub saturates for ranges beyond ~292 years, which still trips the check.
	if days := int(CivilDate(end).Sub(CivilDate(start))/(24*time.Hour)) + 1; days > MaxPreviewDays {
		return nil, fmt.Errorf("%w: %d days, max %d", ErrPreviewWindowTooLarge, days, MaxPreviewDays)
	}
	return ExpandBookings(userID, sectionID, start, end, slots), nil
}

// RenewAll re-expands every active assignment through its subscription end.
// Failing users are counted and skipped.
func (s *Service) RenewAll(ctx context.Context) (_ *RenewalReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.booking.renew")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := s.NowFunc()
	today := CivilDate(start.UTC())

	assignments, err := s.repo.ListAssignments(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list active assignments: %w", err)
	}

	report := &RenewalReport{Assignments: len(assignments)}
	sections := make(map[string]*Section)
	for _, a := range assignments {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		section, ok := sections[a.SectionID]
		if !ok {
			section, err = s.repo.GetSection(ctx, a.SectionID)
			if err != nil && !errors.Is(err, ErrSectionNotFound) {
				return report, fmt.Errorf("get section [%s]: %w", a.SectionID, err)
			}
			sections[a.SectionID] = section
		}
		if section == nil {
			log.Warnf("booking renewal: user %s assigned to missing section %s", a.UserID, a.SectionID)
			report.Failed++
			continue
		}

		a.UpdatedAt = start.UTC()
		inserted, err := s.replace(ctx, *section, a, today)
		if err != nil {
			log.Errorf("booking renewal: user %s: %s", a.UserID, err)
			report.Failed++
			continue
		}
		report.Rows += inserted
	}

	report.Took = s.NowFunc().Sub(start)
	s.metrics.HistBookingRenewalDuration.Observe(report.Took.Seconds())
	span.SetAttributes(
		attribute.Int("assignments", report.Assignments),
		attribute.Int("rows", report.Rows),
		attribute.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *Service) replace(ctx context.Context, section Section, a Assignment, today time.Time) (int, error) {
	slots, err := ParseSlotMap(section.Slots)
	if err != nil {
		return 0, fmt.Errorf("section [%s]: %w", section.ID, err)
	}

	rows := ExpandBookings(a.UserID, section.ID, today, a.ValidUntil, slots)
	inserted, err := s.repo.ReplaceFutureBookings(ctx, a.UserID, today, &a, rows)
	if err != nil {
		return 0, fmt.Errorf("replace future bookings of [%s]: %w", a.UserID, err)
	}
	s.metrics.CounterBookingRows.Add(float64(inserted))
	return inserted, nil
}
