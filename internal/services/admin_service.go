package services

import (
	"database/sql"
	"errors"
	"sort"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
)

type AdminService struct {
	userRepo     *repositories.UserRepository
	manualRepo   *repositories.ManualRankRepository
	settingsRepo *repositories.LeaderboardSettingsRepository
	scoring      *ScoringService
}

func NewAdminService(
	userRepo *repositories.UserRepository,
	manualRepo *repositories.ManualRankRepository,
	settingsRepo *repositories.LeaderboardSettingsRepository,
	scoring *ScoringService,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		manualRepo:   manualRepo,
		settingsRepo: settingsRepo,
		scoring:      scoring,
	}
}

// UpdateUserRank persists a manual rank override (nil clears it) and
// optionally overwrites the user's points. The override record is merged
// read-modify-write so the hidden flag survives rank edits.
func (s *AdminService) UpdateUserRank(login string, rank *int, points *int) error {
	if login == "" {
		return errors.New("username is required")
	}

	existing, err := s.manualRepo.Get(login)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	mr := &models.ManualRank{Login: login, ManualRank: rank}
	if existing != nil {
		mr.Hidden = existing.Hidden
	}

	if err := s.manualRepo.Upsert(mr); err != nil {
		return err
	}

	if points != nil {
		level := ContributionLevel(*points, s.scoring.Settings())
		if err := s.userRepo.UpdatePoints(login, *points, level); err != nil {
			return err
		}
	}

	return nil
}

// SetUserPoints overwrites a user's points and recomputes the level,
// leaving any manual rank untouched. This is the debouncer flush target.
func (s *AdminService) SetUserPoints(login string, points int) error {
	if login == "" {
		return errors.New("username is required")
	}

	level := ContributionLevel(points, s.scoring.Settings())
	return s.userRepo.UpdatePoints(login, points, level)
}

// ToggleUserVisibility merges the hidden flag into the override record
// without clobbering a previously-set manual rank.
func (s *AdminService) ToggleUserVisibility(login string, hidden bool) error {
	if login == "" {
		return errors.New("username is required")
	}

	existing, err := s.manualRepo.Get(login)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	mr := &models.ManualRank{Login: login, Hidden: hidden}
	if existing != nil {
		mr.ManualRank = existing.ManualRank
	}

	return s.manualRepo.Upsert(mr)
}

// AssignTopRanks assigns manual ranks 1..n to the current top-n users by
// points. Ties at the boundary resolve by insertion order, same as the
// public leaderboard sort.
func (s *AdminService) AssignTopRanks(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("top count must be positive")
	}

	users, err := s.userRepo.GetAll()
	if err != nil {
		return 0, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Stats.Points > users[j].Stats.Points
	})

	if n > len(users) {
		n = len(users)
	}

	assigned := 0
	for i := 0; i < n; i++ {
		rank := i + 1
		if err := s.UpdateUserRank(users[i].Login, &rank, nil); err != nil {
			logger.WithError(err).Errorf("Failed to assign rank %d to %s", rank, users[i].Login)
			continue
		}
		assigned++
	}

	return assigned, nil
}

// ClearAllManualRanks clears each non-null manual rank sequentially and
// reports how many were cleared. There is no atomicity across the batch;
// a mid-batch failure leaves earlier users cleared.
func (s *AdminService) ClearAllManualRanks() (int, error) {
	logins, err := s.manualRepo.GetAllRanked()
	if err != nil {
		return 0, err
	}

	cleared := 0
	var lastErr error
	for _, login := range logins {
		if err := s.manualRepo.ClearRank(login); err != nil {
			logger.WithError(err).Errorf("Failed to clear manual rank for %s", login)
			lastErr = err
			continue
		}
		cleared++
	}

	return cleared, lastErr
}

// RecalculateAllPoints recomputes points and level for every stored user
// from their stored contribution counts. Per-user failures are logged and
// skipped, not propagated.
func (s *AdminService) RecalculateAllPoints() (int, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return 0, err
	}

	settings := s.scoring.Settings()
	updated := 0
	for _, user := range users {
		points := CalculatePoints(user.Stats, settings)
		level := ContributionLevel(points, settings)
		if err := s.userRepo.UpdatePoints(user.Login, points, level); err != nil {
			logger.WithError(err).Errorf("Failed to update points for %s", user.Login)
			continue
		}
		updated++
	}

	return updated, nil
}

// LeaderboardSettings retrieves the global visibility settings
func (s *AdminService) LeaderboardSettings() (*models.LeaderboardSettings, error) {
	return s.settingsRepo.Get()
}

// UpdateLeaderboardSettings sets the global visibility flag and returns
// the stored result.
func (s *AdminService) UpdateLeaderboardSettings(visible bool) (*models.LeaderboardSettings, error) {
	if err := s.settingsRepo.Update(visible); err != nil {
		return nil, err
	}
	return s.settingsRepo.Get()
}
