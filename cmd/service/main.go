package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/2beens/coachdesk/internal"
	"github.com/2beens/coachdesk/internal/config"
	"github.com/2beens/coachdesk/internal/logging"
	"github.com/2beens/coachdesk/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	if cfg.LogsPath != "" {
		logsDir := filepath.Dir(cfg.LogsPath)
		exists, err := pkg.PathExists(logsDir, true)
		if err != nil || !exists {
			log.Fatalf("logs dir [%s] not available: %v", logsDir, err)
		}
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "coachdesk-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	coachUsername := os.Getenv("COACHDESK_COACH_USERNAME")
	coachPasswordHash := os.Getenv("COACHDESK_COACH_PASSWORD_HASH")
	if coachUsername == "" || coachPasswordHash == "" {
		log.Fatalln("coach username and password not set. use COACHDESK_COACH_USERNAME and COACHDESK_COACH_PASSWORD_HASH")
	}

	postgresPassword := os.Getenv("COACHDESK_DB_PASS")
	if postgresPassword == "" {
		log.Errorf("db password not set. use COACHDESK_DB_PASS")
	}

	redisPassword := os.Getenv("COACHDESK_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use COACHDESK_REDIS_PASS")
	}

	edgeFunctionsAPIKey := os.Getenv("EDGE_FUNCTIONS_API_KEY")
	if edgeFunctionsAPIKey == "" || cfg.EdgeFunctionsBaseURL == "" {
		log.Warnln("edge functions not configured, AI plan generation unavailable. use EDGE_FUNCTIONS_API_KEY and edge_functions_base_url")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			CoachUsername:           coachUsername,
			CoachPasswordHash:       coachPasswordHash,
			PostgresPassword:        postgresPassword,
			RedisPassword:           redisPassword,
			EdgeFunctionsAPIKey:     edgeFunctionsAPIKey,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
