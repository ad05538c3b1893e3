package services

import (
	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
)

type ScoringService struct {
	scoreSettingsRepo *repositories.ScoreSettingsRepository
}

func NewScoringService(scoreSettingsRepo *repositories.ScoreSettingsRepository) *ScoringService {
	return &ScoringService{
		scoreSettingsRepo: scoreSettingsRepo,
	}
}

// Settings returns the stored score settings, falling back to the defaults
// when the row can't be read.
func (s *ScoringService) Settings() *models.ScoreSettings {
	settings, err := s.scoreSettingsRepo.Get()
	if err != nil {
		logger.WithError(err).Warnf("Failed to load score settings, using defaults")
		return models.NewScoreSettings()
	}
	return settings
}

// UpdateSettings overwrites the stored score weights and level thresholds
func (s *ScoringService) UpdateSettings(settings *models.ScoreSettings) error {
	return s.scoreSettingsRepo.Update(settings)
}

// Score computes points and level for a set of contribution counters
func (s *ScoringService) Score(stats models.ContributionStats) (int, string) {
	settings := s.Settings()
	points := CalculatePoints(stats, settings)
	return points, ContributionLevel(points, settings)
}

// CalculatePoints maps contribution counts to an integer score. Org PRs are
// worth more than general ones; a merged PR is worth more than an open one.
// General counts are the totals minus the org counts, floored at zero.
func CalculatePoints(stats models.ContributionStats, settings *models.ScoreSettings) int {
	if settings == nil {
		settings = models.NewScoreSettings()
	}

	generalPRs := stats.TotalPRs - stats.OrgPRs
	if generalPRs < 0 {
		generalPRs = 0
	}

	generalMergedPRs := stats.MergedPRs - stats.OrgMergedPRs
	if generalMergedPRs < 0 {
		generalMergedPRs = 0
	}

	score := 0
	score += stats.OrgPRs * settings.OrgPR
	score += stats.OrgMergedPRs * settings.OrgMergedPR
	score += generalPRs * settings.GeneralPR
	score += generalMergedPRs * settings.GeneralMergedPR

	return score
}

// ContributionLevel thresholds a points score into a qualitative label
func ContributionLevel(points int, settings *models.ScoreSettings) string {
	if settings == nil {
		settings = models.NewScoreSettings()
	}

	switch {
	case points >= settings.ExpertMin:
		return models.LevelExpert
	case points >= settings.AdvancedMin:
		return models.LevelAdvanced
	case points >= settings.IntermediateMin:
		return models.LevelIntermediate
	case points >= settings.BeginnerMin:
		return models.LevelBeginner
	default:
		return models.LevelNewcomer
	}
}
