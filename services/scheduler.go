package services

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// MaintenanceScheduler wraps cron-based housekeeping jobs: expired session
// cleanup and system metrics sampling. It never generates task occurrences;
// occurrence generation stays inside ResetDay.
type MaintenanceScheduler struct {
	cron *cron.Cron
}

func NewMaintenanceScheduler(loc *time.Location) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// ScheduleInterval registers a periodic job every given duration.
func (s *MaintenanceScheduler) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	return s.cron.AddFunc(spec, job)
}

// ScheduleDaily registers a job at local midnight.
func (s *MaintenanceScheduler) ScheduleDaily(job func()) (cron.EntryID, error) {
	return s.cron.AddFunc("0 0 * * *", job)
}

func (s *MaintenanceScheduler) Start() {
	s.cron.Start()
	log.Println("Maintenance scheduler started")
}

func (s *MaintenanceScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
