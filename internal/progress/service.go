package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/coachdesk/internal/notify"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

type measurementsRepo interface {
	Add(ctx context.Context, m Measurement) (*Measurement, error)
	Get(ctx context.Context, id int) (*Measurement, error)
	ListByAthlete(ctx context.Context, athleteID string) ([]Measurement, error)
	Delete(ctx context.Context, id int) (string, error)
}

type notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

type ServiceParams struct {
	Repo         measurementsRepo
	Notifier     notifier
	Metrics      *metrics.Manager
	CacheSizeMB  int
	CacheTTLSecs int
}

type Service struct {
	repo         measurementsRepo
	notifier     notifier
	metrics      *metrics.Manager
	cache        *freecache.Cache
	cacheTTLSecs int
	now          func() time.Time
}

func NewService(params ServiceParams) *Service {
	megabyte := 1024 * 1024
	return &Service{
		repo:         params.Repo,
		notifier:     params.Notifier,
		metrics:      params.Metrics,
		cache:        freecache.NewCache(params.CacheSizeMB * megabyte),
		cacheTTLSecs: params.CacheTTLSecs,
		now:          time.Now,
	}
}

func dashboardCacheKey(athleteID string) []byte {
	return []byte("dashboard::" + athleteID)
}

func (s *Service) AddMeasurement(ctx context.Context, m Measurement) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.measurement.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now().UTC()
	}

	added, err := s.repo.Add(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("add measurement for athlete [%s]: %w", m.AthleteID, err)
	}
	span.SetAttributes(attribute.Int("measurement.id", added.ID))

	s.invalidate(added.AthleteID)

	if err := s.notifier.Notify(ctx, notify.Notification{
		UserID:  added.AthleteID,
		Kind:    notify.KindMeasurementAdded,
		Message: fmt.Sprintf("new test results from %s", added.TakenOn.Format(time.DateOnly)),
		Payload: added,
	}); err != nil {
		log.Errorf("notify measurement %d added: %s", added.ID, err)
	}

	return added, nil
}

func (s *Service) GetMeasurement(ctx context.Context, id int) (*Measurement, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get measurement %d: %w", id, err)
	}
	return m, nil
}

// ListMeasurements returns the athlete's series, newest first.
func (s *Service) ListMeasurements(ctx context.Context, athleteID string) ([]Measurement, error) {
	series, err := s.repo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list measurements of athlete [%s]: %w", athleteID, err)
	}
	SortSeries(series)
	return series, nil
}

func (s *Service) DeleteMeasurement(ctx context.Context, id int) error {
	athleteID, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete measurement %d: %w", id, err)
	}
	s.invalidate(athleteID)
	return nil
}

// MetricChange diffs the two latest sessions that recorded the metric.
func (s *Service) MetricChange(ctx context.Context, athleteID string, metric Metric) (*DashboardEntry, error) {
	series, err := s.repo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list measurements of athlete [%s]: %w", athleteID, err)
	}
	change, sessions := MetricChange(series, metric)
	return &DashboardEntry{
		Metric:   metric,
		Change:   change,
		Trend:    Assess(change, metric.LowerIsBetter),
		Sessions: sessions,
	}, nil
}

func (s *Service) Dashboard(ctx context.Context, athleteID string) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	cacheKey := dashboardCacheKey(athleteID)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		dashboard := &Dashboard{}
		if err := json.Unmarshal(cached, dashboard); err == nil {
			s.metrics.CounterDashboardCache.WithLabelValues("hit").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return dashboard, nil
		} else {
			log.Errorf("unmarshal cached dashboard of athlete %s: %s", athleteID, err)
		}
	}
	s.metrics.CounterDashboardCache.WithLabelValues("miss").Inc()

	series, err := s.repo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list measurements of athlete [%s]: %w", athleteID, err)
	}
	dashboard := BuildDashboard(athleteID, series, s.now().UTC())

	dashboardBytes, err := json.Marshal(dashboard)
	if err != nil {
		log.Errorf("marshal dashboard of athlete %s: %s", athleteID, err)
		return &dashboard, nil
	}
	if err := s.cache.Set(cacheKey, dashboardBytes, s.cacheTTLSecs); err != nil {
		log.Errorf("set dashboard cache for athlete %s: %s", athleteID, err)
	}

	return &dashboard, nil
}

func (s *Service) invalidate(athleteID string) {
	if s.cache.Del(dashboardCacheKey(athleteID)) {
		log.Tracef("dashboard cache of athlete %s invalidated", athleteID)
	}
}
