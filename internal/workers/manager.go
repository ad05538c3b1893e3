package workers

import (
	"context"
	"sync"

	"github.com/nst-sdc/skillfest-server/internal/services"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
)

// WorkerManager manages the background workers
type WorkerManager struct {
	workers      []Worker
	statsService *services.GitHubStatsService
	issueCache   *services.IssueCacheService
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(
	statsService *services.GitHubStatsService,
	issueCache *services.IssueCacheService,
) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:      make([]Worker, 0),
		statsService: statsService,
		issueCache:   issueCache,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// StartAll starts all background workers
func (wm *WorkerManager) StartAll() error {
	poller := NewIssuePoller("issue-poller-1", wm.statsService, wm.issueCache)
	wm.workers = append(wm.workers, poller)
	wm.startWorker(poller)

	logger.Infof("Started %d total workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers
func (wm *WorkerManager) StopAll() error {
	logger.Infof("Stopping all workers...")

	// Cancel the context to signal all workers to stop
	wm.cancel()

	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			logger.WithError(err).Errorf("Error stopping worker %s", worker.GetWorkerID())
		}
	}

	// Wait for all workers to finish
	wm.wg.Wait()

	logger.Infof("All workers stopped")
	return nil
}

// startWorker starts a single worker in a goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && err != context.Canceled {
			logger.WithError(err).Errorf("Worker %s stopped with error", worker.GetWorkerID())
		}
	}()
}
