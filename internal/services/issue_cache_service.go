package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
)

// IssueCacheKey is the Redis key holding the open-issue listing.
const IssueCacheKey = "skillfest:issues:open"

// IssueCacheService keeps the open-issue listing in Redis inside a short
// freshness window so the event page does not hammer the GitHub API. A nil
// client disables caching; every lookup is then a miss.
type IssueCacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIssueCacheService(client *redis.Client, ttl time.Duration) *IssueCacheService {
	return &IssueCacheService{
		client: client,
		ttl:    ttl,
	}
}

// GetIssues returns the cached listing and whether it was still fresh
func (s *IssueCacheService) GetIssues(ctx context.Context) ([]models.Issue, bool) {
	if s.client == nil {
		return nil, false
	}

	data, err := s.client.Get(ctx, IssueCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.WithError(err).Warnf("Issue cache read failed")
		}
		return nil, false
	}

	var issues []models.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		logger.WithError(err).Warnf("Corrupt issue cache entry, dropping")
		return nil, false
	}

	return issues, true
}

// SetIssues stores the listing with the configured freshness window
func (s *IssueCacheService) SetIssues(ctx context.Context, issues []models.Issue) {
	if s.client == nil {
		return
	}

	data, err := json.Marshal(issues)
	if err != nil {
		logger.WithError(err).Errorf("Failed to marshal issue cache entry")
		return
	}

	if err := s.client.Set(ctx, IssueCacheKey, data, s.ttl).Err(); err != nil {
		logger.WithError(err).Warnf("Issue cache write failed")
	}
}
