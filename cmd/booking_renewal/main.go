package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/coachdesk/internal/booking"
	"github.com/2beens/coachdesk/internal/config"
	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/logging"
	"github.com/2beens/coachdesk/internal/notify"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Runs the booking renewal once, outside of the service schedule.
// Handy after a bulk import of assignments or when the nightly job was missed.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	logsPath := flag.String("logs-path", "", "logs file path (empty for stdout)")
	timeout := flag.Duration("timeout", 10*time.Minute, "max duration of the renewal")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   *logsPath,
		LogToStdout:   *logsPath == "",
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
	})

	log.Println("starting booking renewal ...")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("COACHDESK_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	service := booking.NewService(
		booking.NewRepo(dbPool),
		notify.LogNotifier{},
		metrics.NewManager("backend", "booking_renewal", prometheus.NewRegistry()),
	)

	report, err := service.RenewAll(ctx)
	if err != nil {
		log.Fatalf("renewal failed: %s", err)
	}
	log.Printf("renewal done: %d assignments, %d rows, %d failed, took %s",
		report.Assignments, report.Rows, report.Failed, report.Took)
}
