package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/coachdesk/internal/auth"
	"github.com/2beens/coachdesk/internal/booking"
	"github.com/2beens/coachdesk/internal/config"
	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/edge"
	"github.com/2beens/coachdesk/internal/middleware"
	"github.com/2beens/coachdesk/internal/notify"
	"github.com/2beens/coachdesk/internal/nutrition"
	"github.com/2beens/coachdesk/internal/progress"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/internal/wizard"
	"github.com/2beens/coachdesk/pkg"
)

const sessionsCleanupSchedule = "@every 8h"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	loginChecker *auth.LoginChecker
	authService  *auth.Service

	notifier         notify.Notifier
	edgeClient       *edge.Client
	nutritionService *nutrition.Service
	progressService  *progress.Service
	bookingService   *booking.Service
	wizardService    *wizard.Service
	bookingRenewer   *booking.Renewer
	maintenanceJobs  *cron.Cron

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	CoachUsername           string
	CoachPasswordHash       string
	PostgresPassword        string
	RedisPassword           string
	EdgeFunctionsAPIKey     string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "coachdesk", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "coachdesk-backend")
	if err != nil {
		return nil, err
	}

	authService := auth.NewAuthService(&auth.Coach{
		Username:     params.CoachUsername,
		PasswordHash: params.CoachPasswordHash,
	}, auth.DefaultTTL, rdb)

	maintenanceJobs := cron.NewWithLocation(time.UTC)
	if err := maintenanceJobs.AddFunc(sessionsCleanupSchedule, func() {
		authService.ScanAndClean(context.Background(), time.Now())
	}); err != nil {
		return nil, fmt.Errorf("schedule sessions cleanup: %w", err)
	}

	// realtime feed first, logs when redis is not reachable
	notifier := notify.Fallback{
		Primary:   notify.NewRedisPublisher(rdb),
		Secondary: notify.LogNotifier{},
	}

	edgeClient := edge.NewClient(cfg.EdgeFunctionsBaseURL, params.EdgeFunctionsAPIKey, nil)

	nutritionService := nutrition.NewService(nutrition.NewRepo(dbPool), metricsManager)
	progressService := progress.NewService(progress.ServiceParams{
		Repo:         progress.NewRepo(dbPool),
		Notifier:     notifier,
		Metrics:      metricsManager,
		CacheSizeMB:  cfg.DashboardCacheSizeMB,
		CacheTTLSecs: cfg.DashboardCacheTTLSecs,
	})
	bookingService := booking.NewService(booking.NewRepo(dbPool), notifier, metricsManager)
	wizardService := wizard.NewService(
		wizard.NewSessionStore(rdb, time.Duration(cfg.WizardSessionTTLMins)*time.Minute),
		nutritionService,
		edgeClient,
		notifier,
		metricsManager,
	)

	var bookingRenewer *booking.Renewer
	if cfg.BookingRenewalSchedule != "" {
		bookingRenewer, err = booking.NewRenewer(cfg.BookingRenewalSchedule, bookingService)
		if err != nil {
			return nil, fmt.Errorf("booking renewer [%s]: %w", cfg.BookingRenewalSchedule, err)
		}
	}

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,

		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		notifier:         notifier,
		edgeClient:       edgeClient,
		nutritionService: nutritionService,
		progressService:  progressService,
		bookingService:   bookingService,
		wizardService:    wizardService,
		bookingRenewer:   bookingRenewer,
		maintenanceJobs:  maintenanceJobs,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("coachdesk-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	auth.NewHandler(s.authService).SetupRoutes(
		r,
		reqRateLimiter,
		s.metricsManager,
		s.config.LoginRateLimitAllowedPerMin,
	)
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")

	nutrition.NewHandler(s.nutritionService).SetupRoutes(r)
	progress.NewHandler(s.progressService).SetupRoutes(r)
	booking.NewHandler(s.bookingService).SetupRoutes(r)
	wizard.NewHandler(s.wizardService).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	// AI plan generation is the expensive call
	r.Use(middleware.RateLimitRoute(reqRateLimiter, "wizard-submit", s.config.AIPlanRateLimitAllowedPerMin, s.metricsManager))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: 2 * time.Minute, // AI plan generation can take a while
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.maintenanceJobs.Start()
	if s.bookingRenewer != nil {
		s.bookingRenewer.Start()
	} else {
		log.Warnln("booking renewal job disabled")
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.maintenanceJobs.Stop()
	if s.bookingRenewer != nil {
		s.bookingRenewer.Stop()
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
