package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/repository"
)

// Task is a job run on a fixed interval.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs background tasks, each on its own ticker. Every run is
// bounded by the task timeout so a slow run never piles up behind the next.
type Scheduler struct {
	tasks   []Task
	timeout time.Duration
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler. Tasks with a non-positive interval are
// skipped.
func NewScheduler(timeout time.Duration, tasks ...Task) *Scheduler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{tasks: tasks, timeout: timeout}
}

// Start launches every task loop. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	log.Println("Scheduler started...")

	for _, task := range s.tasks {
		if task.Interval <= 0 || task.Run == nil {
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, task)
	}
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx, task)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce runs task under the scheduler timeout and logs its failure.
func (s *Scheduler) RunOnce(ctx context.Context, task Task) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := task.Run(runCtx); err != nil {
		log.Printf("Scheduled task %s failed: %v", task.Name, err)
	}
}

// Stop ends every loop and waits for running tasks to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// MaintenanceService holds the periodic housekeeping jobs
type MaintenanceService struct {
	exports     *ExportService
	idempotency repository.IdempotencyRepository
	tokens      repository.RecoveryTokenRepository
	storagePath string
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	exports *ExportService,
	idempotency repository.IdempotencyRepository,
	tokens repository.RecoveryTokenRepository,
	storagePath string,
) *MaintenanceService {
	return &MaintenanceService{
		exports:     exports,
		idempotency: idempotency,
		tokens:      tokens,
		storagePath: storagePath,
	}
}

// Snapshot writes the current month's report workbook to storage.
func (s *MaintenanceService) Snapshot(ctx context.Context) error {
	path, err := s.exports.Snapshot(ctx, s.storagePath)
	if err != nil {
		return err
	}
	log.Printf("Report snapshot written to %s", path)
	return nil
}

// Purge deletes expired idempotency keys and recovery tokens.
func (s *MaintenanceService) Purge(ctx context.Context) error {
	now := time.Now().UTC()

	keys, err := s.idempotency.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	tokens, err := s.tokens.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	if keys > 0 || tokens > 0 {
		log.Printf("Purged %d idempotency keys and %d recovery tokens", keys, tokens)
	}
	return nil
}

// Tasks returns the snapshot and purge jobs at the given intervals.
func (s *MaintenanceService) Tasks(snapshotEvery, purgeEvery time.Duration) []Task {
	return []Task{
		{Name: "snapshot", Interval: snapshotEvery, Run: s.Snapshot},
		{Name: "purge", Interval: purgeEvery, Run: s.Purge},
	}
}
