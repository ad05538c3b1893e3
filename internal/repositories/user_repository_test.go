package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(login string, points int) *models.User {
	return &models.User{
		Login:      login,
		AvatarURL:  "https://avatars.example.com/" + login,
		LastActive: time.Now(),
		Stats: models.ContributionStats{
			TotalPRs:  5,
			MergedPRs: 2,
			Points:    points,
			Level:     models.LevelNewcomer,
		},
	}
}

func TestUserRepositoryUpsert(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(testUser("octocat", 50)))

	stored, err := repo.GetByLogin("octocat")
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Stats.Points)
	assert.Equal(t, 5, stored.Stats.TotalPRs)

	// Second upsert refreshes stats in place
	updated := testUser("octocat", 80)
	updated.Stats.TotalPRs = 8
	require.NoError(t, repo.Upsert(updated))

	stored, err = repo.GetByLogin("octocat")
	require.NoError(t, err)
	assert.Equal(t, 80, stored.Stats.Points)
	assert.Equal(t, 8, stored.Stats.TotalPRs)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepositoryGetAllKeepsInsertionOrder(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	for _, login := range []string{"carol", "alice", "bob"} {
		require.NoError(t, repo.Upsert(testUser(login, 10)))
	}

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "carol", all[0].Login)
	assert.Equal(t, "alice", all[1].Login)
	assert.Equal(t, "bob", all[2].Login)
}

func TestUserRepositoryGetByLoginMissing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetByLogin("ghost")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestUserRepositoryUpdatePoints(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(testUser("octocat", 10)))
	require.NoError(t, repo.UpdatePoints("octocat", 250, models.LevelAdvanced))

	stored, err := repo.GetByLogin("octocat")
	require.NoError(t, err)
	assert.Equal(t, 250, stored.Stats.Points)
	assert.Equal(t, models.LevelAdvanced, stored.Stats.Level)

	err = repo.UpdatePoints("ghost", 100, models.LevelBeginner)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
