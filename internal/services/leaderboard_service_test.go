package services

import (
	"testing"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaderboardFixture(t *testing.T) (*LeaderboardService, *repositories.UserRepository, *repositories.ManualRankRepository, *repositories.LeaderboardSettingsRepository) {
	db := newTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	manualRepo := repositories.NewManualRankRepository(db)
	settingsRepo := repositories.NewLeaderboardSettingsRepository(db)
	return NewLeaderboardService(userRepo, manualRepo, settingsRepo), userRepo, manualRepo, settingsRepo
}

func TestPublicLeaderboardOrdering(t *testing.T) {
	service, userRepo, _, _ := newLeaderboardFixture(t)

	seedUser(t, userRepo, "alice", 120, models.ContributionStats{})
	seedUser(t, userRepo, "bob", 250, models.ContributionStats{})
	seedUser(t, userRepo, "carol", 120, models.ContributionStats{})
	seedUser(t, userRepo, "dave", 80, models.ContributionStats{})

	board, err := service.PublicLeaderboard()
	require.NoError(t, err)

	assert.True(t, board.Visible)
	require.Len(t, board.Entries, 4)

	// Points descending; alice and carol tie, so insertion order holds
	logins := []string{board.Entries[0].Login, board.Entries[1].Login, board.Entries[2].Login, board.Entries[3].Login}
	assert.Equal(t, []string{"bob", "alice", "carol", "dave"}, logins)

	// Ranks are consecutive positions, ties included
	for i, entry := range board.Entries {
		assert.Equal(t, i+1, entry.Rank)
	}
}

func TestPublicLeaderboardExcludesHidden(t *testing.T) {
	service, userRepo, manualRepo, _ := newLeaderboardFixture(t)

	seedUser(t, userRepo, "alice", 300, models.ContributionStats{})
	seedUser(t, userRepo, "bob", 200, models.ContributionStats{})
	seedUser(t, userRepo, "carol", 100, models.ContributionStats{})

	require.NoError(t, manualRepo.Upsert(&models.ManualRank{Login: "bob", Hidden: true}))

	board, err := service.PublicLeaderboard()
	require.NoError(t, err)

	require.Len(t, board.Entries, 2)
	assert.Equal(t, "alice", board.Entries[0].Login)
	assert.Equal(t, "carol", board.Entries[1].Login)

	// No gap where the hidden user would have ranked
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, 2, board.Entries[1].Rank)
}

func TestPublicLeaderboardHiddenGlobally(t *testing.T) {
	service, userRepo, _, settingsRepo := newLeaderboardFixture(t)

	seedUser(t, userRepo, "alice", 300, models.ContributionStats{})
	require.NoError(t, settingsRepo.Update(false))

	board, err := service.PublicLeaderboard()
	require.NoError(t, err)

	assert.False(t, board.Visible)
	assert.Empty(t, board.Entries)
}

func TestPublicLeaderboardManualRankIsOverlayOnly(t *testing.T) {
	service, userRepo, manualRepo, _ := newLeaderboardFixture(t)

	seedUser(t, userRepo, "alice", 300, models.ContributionStats{})
	seedUser(t, userRepo, "bob", 200, models.ContributionStats{})

	// Pin bob to rank 1 manually; the sort must not move him
	rank := 1
	require.NoError(t, manualRepo.Upsert(&models.ManualRank{Login: "bob", ManualRank: &rank}))

	board, err := service.PublicLeaderboard()
	require.NoError(t, err)

	require.Len(t, board.Entries, 2)
	assert.Equal(t, "alice", board.Entries[0].Login)
	assert.Equal(t, "bob", board.Entries[1].Login)
	assert.Equal(t, 2, board.Entries[1].Rank)
	require.NotNil(t, board.Entries[1].ManualRank)
	assert.Equal(t, 1, *board.Entries[1].ManualRank)
	assert.Nil(t, board.Entries[0].ManualRank)
}

func TestAdminUsersIncludesHidden(t *testing.T) {
	service, userRepo, manualRepo, _ := newLeaderboardFixture(t)

	seedUser(t, userRepo, "alice", 300, models.ContributionStats{})
	seedUser(t, userRepo, "bob", 200, models.ContributionStats{})
	require.NoError(t, manualRepo.Upsert(&models.ManualRank{Login: "bob", Hidden: true}))

	users, err := service.AdminUsers("", "", models.SortByPoints, models.SortDesc)
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.True(t, users[1].Stats.Hidden)
}

func TestAdminUsersFilters(t *testing.T) {
	service, userRepo, _, _ := newLeaderboardFixture(t)

	seedUser(t, userRepo, "alice", 300, models.ContributionStats{Level: models.LevelAdvanced})
	seedUser(t, userRepo, "bob", 30, models.ContributionStats{Level: models.LevelBeginner})
	seedUser(t, userRepo, "bobby", 10, models.ContributionStats{Level: models.LevelNewcomer})

	users, err := service.AdminUsers("bob", "", models.SortByPoints, models.SortDesc)
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = service.AdminUsers("", models.LevelBeginner, models.SortByPoints, models.SortDesc)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Login)

	users, err = service.AdminUsers("bob", models.LevelNewcomer, models.SortByPoints, models.SortDesc)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bobby", users[0].Login)
}

func TestAdminUsersSorting(t *testing.T) {
	service, userRepo, _, _ := newLeaderboardFixture(t)

	seedUser(t, userRepo, "alice", 100, models.ContributionStats{TotalPRs: 3, MergedPRs: 1, Contributions: 50})
	seedUser(t, userRepo, "bob", 200, models.ContributionStats{TotalPRs: 9, MergedPRs: 5, Contributions: 10})
	seedUser(t, userRepo, "carol", 150, models.ContributionStats{TotalPRs: 6, MergedPRs: 8, Contributions: 30})

	tests := []struct {
		name   string
		sortBy models.SortOption
		dir    models.SortDirection
		order  []string
	}{
		{"points desc", models.SortByPoints, models.SortDesc, []string{"bob", "carol", "alice"}},
		{"points asc", models.SortByPoints, models.SortAsc, []string{"alice", "carol", "bob"}},
		{"prs desc", models.SortByPRs, models.SortDesc, []string{"bob", "carol", "alice"}},
		{"merged desc", models.SortByMergedPRs, models.SortDesc, []string{"carol", "bob", "alice"}},
		{"contributions desc", models.SortByContributions, models.SortDesc, []string{"alice", "carol", "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := service.AdminUsers("", "", tt.sortBy, tt.dir)
			require.NoError(t, err)
			require.Len(t, users, len(tt.order))
			for i, login := range tt.order {
				assert.Equal(t, login, users[i].Login)
			}
		})
	}
}

func TestSortUsersStableOnTies(t *testing.T) {
	users := []*models.User{
		{Login: "first", Stats: models.ContributionStats{Points: 50}},
		{Login: "second", Stats: models.ContributionStats{Points: 50}},
		{Login: "third", Stats: models.ContributionStats{Points: 50}},
	}

	sortUsers(users, models.SortByPoints, models.SortDesc)

	assert.Equal(t, "first", users[0].Login)
	assert.Equal(t, "second", users[1].Login)
	assert.Equal(t, "third", users[2].Login)
}
