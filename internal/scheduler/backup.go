package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// AuditCleanupSchedule runs the audit retention job once a day.
const AuditCleanupSchedule = "30 4 * * *"

// Enqueuer hands work to the background task queue.
type Enqueuer interface {
	EnqueueExport(format, reason string) (string, error)
	EnqueueAuditCleanup(retentionDays int) (string, error)
}

type BackupConfig struct {
	Enabled            bool
	Schedule           string
	Format             string
	AuditRetentionDays int
}

// BackupScheduler enqueues periodic catalogue snapshots and audit cleanups.
type BackupScheduler struct {
	queue  Enqueuer
	config BackupConfig

	cron        *cron.Cron
	backupEntry cron.EntryID
	mu          sync.RWMutex
	isRunning   bool
	cancelFunc  context.CancelFunc
}

func NewBackupScheduler(queue Enqueuer, cfg BackupConfig) *BackupScheduler {
	return &BackupScheduler{
		queue:  queue,
		config: cfg,
		cron:   cron.New(cron.WithParser(parser)),
	}
}

// Start registers the jobs and starts the cron loop. It stops on its own
// when ctx is cancelled.
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.config.Enabled {
		if err := ValidateCronSchedule(s.config.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
		}
		entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
			s.enqueueBackup("scheduled")
		})
		if err != nil {
			return fmt.Errorf("failed to schedule backup job: %w", err)
		}
		s.backupEntry = entryID
	} else {
		log.Printf("[SCHEDULER] Catalogue backups disabled")
	}

	if _, err := s.cron.AddFunc(AuditCleanupSchedule, s.enqueueAuditCleanup); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	if s.config.Enabled {
		next, _ := NextRunTime(s.config.Schedule, time.Now())
		log.Printf("[SCHEDULER] Backups started with schedule '%s' (%s). Next run: %v",
			s.config.Schedule, CronDescription(s.config.Schedule), next)
	}

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for running jobs and halts the scheduler.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("[SCHEDULER] Stopped")
}

func (s *BackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextBackup returns when the next scheduled backup fires, or nil.
func (s *BackupScheduler) NextBackup() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || s.backupEntry == 0 {
		return nil
	}

	entry := s.cron.Entry(s.backupEntry)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *BackupScheduler) enqueueBackup(reason string) {
	id, err := s.queue.EnqueueExport(s.config.Format, reason)
	if err != nil {
		log.Printf("[SCHEDULER] Failed to enqueue backup: %v", err)
		return
	}
	log.Printf("[SCHEDULER] Enqueued %s backup task %s", s.config.Format, id)
}

func (s *BackupScheduler) enqueueAuditCleanup() {
	if _, err := s.queue.EnqueueAuditCleanup(s.config.AuditRetentionDays); err != nil {
		log.Printf("[SCHEDULER] Failed to enqueue audit cleanup: %v", err)
	}
}
