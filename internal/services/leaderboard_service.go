package services

import (
	"sort"
	"strings"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
)

type LeaderboardService struct {
	userRepo     *repositories.UserRepository
	manualRepo   *repositories.ManualRankRepository
	settingsRepo *repositories.LeaderboardSettingsRepository
}

func NewLeaderboardService(
	userRepo *repositories.UserRepository,
	manualRepo *repositories.ManualRankRepository,
	settingsRepo *repositories.LeaderboardSettingsRepository,
) *LeaderboardService {
	return &LeaderboardService{
		userRepo:     userRepo,
		manualRepo:   manualRepo,
		settingsRepo: settingsRepo,
	}
}

// PublicLeaderboard builds the view shown to end users. When the global
// visibility flag is off, the entries are empty regardless of stored data.
func (s *LeaderboardService) PublicLeaderboard() (*models.Leaderboard, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	board := &models.Leaderboard{
		Visible:     settings.Visible,
		LastUpdated: settings.LastUpdated,
		Entries:     []models.LeaderboardEntry{},
	}

	if !settings.Visible {
		return board, nil
	}

	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}

	board.Entries = buildEntries(users)
	return board, nil
}

// ListUsers returns all users with the manual-rank overlay applied,
// preserving insertion order.
func (s *LeaderboardService) ListUsers() ([]*models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	overrides, err := s.manualRepo.GetAll()
	if err != nil {
		return nil, err
	}

	applyOverrides(users, overrides)
	return users, nil
}

// AdminUsers returns the filtered, sorted view backing the admin table.
// Hidden users are included; the table flags them instead of dropping them.
func (s *LeaderboardService) AdminUsers(search, level string, sortBy models.SortOption, dir models.SortDirection) ([]*models.User, error) {
	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}

	users = filterUsers(users, search, level)
	sortUsers(users, sortBy, dir)
	return users, nil
}

// applyOverrides merges the override records into the user list
func applyOverrides(users []*models.User, overrides map[string]*models.ManualRank) {
	for _, user := range users {
		if mr, ok := overrides[user.Login]; ok {
			user.Stats.ManualRank = mr.ManualRank
			user.Stats.Hidden = mr.Hidden
		}
	}
}

// buildEntries sorts by points descending (stable, so equal points keep
// insertion order), drops hidden users, and assigns position = index+1.
// Manual rank is carried alongside as an overlay; it never reorders.
func buildEntries(users []*models.User) []models.LeaderboardEntry {
	visible := make([]*models.User, 0, len(users))
	for _, user := range users {
		if !user.Stats.Hidden {
			visible = append(visible, user)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Stats.Points > visible[j].Stats.Points
	})

	entries := make([]models.LeaderboardEntry, 0, len(visible))
	for i, user := range visible {
		entries = append(entries, models.LeaderboardEntry{
			Rank:       i + 1,
			Login:      user.Login,
			AvatarURL:  user.AvatarURL,
			Points:     user.Stats.Points,
			Level:      user.Stats.Level,
			ManualRank: user.Stats.ManualRank,
		})
	}

	return entries
}

// filterUsers narrows the list by username substring and level label
func filterUsers(users []*models.User, search, level string) []*models.User {
	if search == "" && level == "" {
		return users
	}

	search = strings.ToLower(search)
	filtered := make([]*models.User, 0, len(users))
	for _, user := range users {
		if search != "" && !strings.Contains(strings.ToLower(user.Login), search) {
			continue
		}
		if level != "" && user.Stats.Level != level {
			continue
		}
		filtered = append(filtered, user)
	}

	return filtered
}

// sortUsers orders the admin table in place by the selected key. The sort
// is stable so ties keep their relative input order.
func sortUsers(users []*models.User, sortBy models.SortOption, dir models.SortDirection) {
	less := func(a, b *models.User) bool {
		switch sortBy {
		case models.SortByPRs:
			return a.Stats.TotalPRs > b.Stats.TotalPRs
		case models.SortByMergedPRs:
			return a.Stats.MergedPRs > b.Stats.MergedPRs
		case models.SortByContributions:
			return a.Stats.Contributions > b.Stats.Contributions
		case models.SortByDate:
			return a.LastActive.After(b.LastActive)
		default:
			return a.Stats.Points > b.Stats.Points
		}
	}

	sort.SliceStable(users, func(i, j int) bool {
		if dir == models.SortAsc {
			return less(users[j], users[i])
		}
		return less(users[i], users[j])
	})
}
