package booking

import (
	"context"
	"time"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultRenewalSchedule = "0 30 2 * * *"
	renewalTimeout         = 10 * time.Minute
)

type renewalService interface {
	RenewAll(ctx context.Context) (*RenewalReport, error)
}

// Renewer runs the booking renewal on a cron schedule (seconds field first).
type Renewer struct {
	cron    *cron.Cron
	service renewalService
	timeout time.Duration
}

func NewRenewer(schedule string, service renewalService) (*Renewer, error) {
	if schedule == "" {
		schedule = DefaultRenewalSchedule
	}

	r := &Renewer{
		cron:    cron.NewWithLocation(time.UTC),
		service: service,
		timeout: renewalTimeout,
	}
	if err := r.cron.AddFunc(schedule, r.Run); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renewer) Start() {
	log.Infof("booking renewal scheduled, next run at %s", r.Next())
	r.cron.Start()
}

func (r *Renewer) Stop() {
	r.cron.Stop()
}

// Next returns the time of the next scheduled run.
func (r *Renewer) Next() time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now().UTC())
}

func (r *Renewer) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	report, err := r.service.RenewAll(ctx)
	if err != nil {
		log.Errorf("booking renewal failed: %s", err)
		return
	}
	log.Infof("booking renewal done: %d assignments, %d rows, %d failed, took %s",
		report.Assignments, report.Rows, report.Failed, report.Took)
}
