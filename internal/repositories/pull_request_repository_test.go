package repositories

import (
	"testing"
	"time"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullRequestRepositoryReplaceForUser(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	prRepo := NewPullRequestRepository(db)

	require.NoError(t, userRepo.Upsert(testUser("octocat", 0)))

	mergedAt := time.Now().Add(-1 * time.Hour)
	first := []*models.PullRequest{
		{ID: 1, Title: "Fix login flow", URL: "https://github.com/nst-sdc/site/pull/1", State: models.PRStateMerged, IsOrg: true, CreatedAt: time.Now().Add(-48 * time.Hour), MergedAt: &mergedAt},
		{ID: 2, Title: "Add dark mode", URL: "https://github.com/nst-sdc/site/pull/2", State: models.PRStateOpen, IsOrg: true, CreatedAt: time.Now().Add(-24 * time.Hour)},
	}
	require.NoError(t, prRepo.ReplaceForUser("octocat", first))

	stored, err := prRepo.GetByLogin("octocat")
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// Newest first
	assert.Equal(t, int64(2), stored[0].ID)
	assert.Equal(t, int64(1), stored[1].ID)
	require.NotNil(t, stored[1].MergedAt)

	// A later sync fully replaces the stored set
	second := []*models.PullRequest{
		{ID: 3, Title: "Update readme", URL: "https://github.com/nst-sdc/site/pull/3", State: models.PRStateOpen, CreatedAt: time.Now()},
	}
	require.NoError(t, prRepo.ReplaceForUser("octocat", second))

	stored, err = prRepo.GetByLogin("octocat")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, int64(3), stored[0].ID)
}

func TestPullRequestRepositoryEmptyReplaceClears(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	prRepo := NewPullRequestRepository(db)

	require.NoError(t, userRepo.Upsert(testUser("octocat", 0)))
	require.NoError(t, prRepo.ReplaceForUser("octocat", []*models.PullRequest{
		{ID: 1, Title: "One", URL: "https://example.com/1", State: models.PRStateOpen, CreatedAt: time.Now()},
	}))
	require.NoError(t, prRepo.ReplaceForUser("octocat", nil))

	stored, err := prRepo.GetByLogin("octocat")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
