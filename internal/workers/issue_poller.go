package workers

import (
	"context"
	"time"

	"github.com/nst-sdc/skillfest-server/internal/services"
	"github.com/nst-sdc/skillfest-server/pkg/config"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
)

// IssuePoller refetches the organization's open-issue listing on a fixed
// interval and refreshes the cache, so the event page always reads warm
// data. Uses the server-side GitHub token, not a user session.
type IssuePoller struct {
	*BaseWorker
	statsService *services.GitHubStatsService
	issueCache   *services.IssueCacheService
	interval     time.Duration
}

func NewIssuePoller(
	workerID string,
	statsService *services.GitHubStatsService,
	issueCache *services.IssueCacheService,
) *IssuePoller {
	return &IssuePoller{
		BaseWorker:   NewBaseWorker(workerID),
		statsService: statsService,
		issueCache:   issueCache,
		interval:     time.Duration(config.AppConfig.Sync.IssuePollSeconds) * time.Second,
	}
}

// Start begins the polling loop
func (w *IssuePoller) Start(ctx context.Context) error {
	w.Running = true
	logger.Infof("Issue poller %s started (every %s)", w.WorkerID, w.interval)

	// Warm the cache before the first tick
	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Issue poller %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Issue poller %s stopping", w.WorkerID)
			return nil
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll fetches the open issues and refreshes the cache. Failures are
// logged and the stale cache entry is left in place.
func (w *IssuePoller) poll(ctx context.Context) {
	issues, err := w.statsService.FetchOpenIssues(ctx, config.AppConfig.GitHub.Token)
	if err != nil {
		logger.WithError(err).Warnf("Issue poller %s fetch failed", w.WorkerID)
		return
	}

	w.issueCache.SetIssues(ctx, issues)
	logger.Debugf("Issue poller %s cached %d open issues", w.WorkerID, len(issues))
}
