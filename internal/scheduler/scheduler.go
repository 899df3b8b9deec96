package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/csiess85/deckenhoehe/internal/wx"
)

// Scheduler periodically fetches reports for the configured stations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *wx.Service
	airports  []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(airports []string, interval time.Duration, service *wx.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		airports:  airports,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.airports) == 0 {
		log.Println("scheduler: no airports configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	job := func() {
		log.Printf("scheduler: fetching reports for %d stations", len(s.airports))

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.service.FetchAndStore(ctx, s.airports); err != nil {
			log.Printf("scheduler: fetch failed: %v", err)
			return
		}
		log.Println("scheduler: completed fetch job")
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(job)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()

	// Seed snapshots right away instead of waiting a full interval.
	go job()

	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
