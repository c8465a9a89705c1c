// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookmarks/internal/config"
	"github.com/mrlokans/bookmarks/internal/tasks"
)

// AuditCleanupScheduler periodically enqueues audit log cleanup tasks.
type AuditCleanupScheduler struct {
	taskClient *tasks.Client
	config     config.Audit

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(taskClient *tasks.Client, cfg config.Audit) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		taskClient: taskClient,
		config:     cfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.taskClient == nil {
		log.Printf("Audit cleanup scheduler: task queue not configured, skipping")
		return nil
	}

	schedule := s.config.CleanupSchedule
	if schedule == "" {
		schedule = "0 3 * * *"
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.enqueueCleanup()
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule '%s': %w", schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s'", schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow enqueues an immediate cleanup.
func (s *AuditCleanupScheduler) RunNow() {
	s.enqueueCleanup()
}

// IsRunning returns whether the scheduler is active.
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will be enqueued.
func (s *AuditCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *AuditCleanupScheduler) enqueueCleanup() {
	task := tasks.CleanupAuditEventsTask{
		RetentionDays: s.config.RetentionDays,
	}

	if _, err := s.taskClient.Add(task).Save(); err != nil {
		log.Printf("Audit cleanup scheduler: failed to enqueue task: %v", err)
		return
	}

	log.Printf("Audit cleanup scheduler: enqueued cleanup task (retention %d days)", s.config.RetentionDays)
}
