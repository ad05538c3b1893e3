package services

import (
	"testing"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func TestCalculatePoints(t *testing.T) {
	settings := models.NewScoreSettings()

	tests := []struct {
		name     string
		stats    models.ContributionStats
		expected int
	}{
		{
			name:     "no activity",
			stats:    models.ContributionStats{},
			expected: 0,
		},
		{
			name: "mixed org and general activity",
			stats: models.ContributionStats{
				TotalPRs:     10,
				MergedPRs:    6,
				OrgPRs:       4,
				OrgMergedPRs: 3,
			},
			expected: 136, // 4*10 + 3*15 + 6*5 + 3*7
		},
		{
			name: "org activity only",
			stats: models.ContributionStats{
				TotalPRs:     3,
				MergedPRs:    2,
				OrgPRs:       3,
				OrgMergedPRs: 2,
			},
			expected: 60, // 3*10 + 2*15
		},
		{
			name: "general activity only",
			stats: models.ContributionStats{
				TotalPRs:  5,
				MergedPRs: 2,
			},
			expected: 39, // 5*5 + 2*7
		},
		{
			name: "org counts exceeding totals floor at zero",
			stats: models.ContributionStats{
				TotalPRs:     2,
				MergedPRs:    1,
				OrgPRs:       5,
				OrgMergedPRs: 3,
			},
			expected: 95, // 5*10 + 3*15, no negative general share
		},
		{
			name: "contributions do not affect points",
			stats: models.ContributionStats{
				Contributions: 500,
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculatePoints(tt.stats, settings))
		})
	}
}

func TestCalculatePointsNilSettings(t *testing.T) {
	stats := models.ContributionStats{TotalPRs: 1, OrgPRs: 1}
	assert.Equal(t, 10, CalculatePoints(stats, nil))
}

func TestContributionLevel(t *testing.T) {
	settings := models.NewScoreSettings()

	tests := []struct {
		points   int
		expected string
	}{
		{0, models.LevelNewcomer},
		{24, models.LevelNewcomer},
		{25, models.LevelBeginner},
		{99, models.LevelBeginner},
		{100, models.LevelIntermediate},
		{199, models.LevelIntermediate},
		{200, models.LevelAdvanced},
		{399, models.LevelAdvanced},
		{400, models.LevelExpert},
		{1000, models.LevelExpert},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ContributionLevel(tt.points, settings), "points=%d", tt.points)
	}
}

func TestScoringServiceScore(t *testing.T) {
	db := newTestDB(t)
	service := NewScoringService(repositories.NewScoreSettingsRepository(db))

	points, level := service.Score(models.ContributionStats{
		TotalPRs:     10,
		MergedPRs:    6,
		OrgPRs:       4,
		OrgMergedPRs: 3,
	})

	assert.Equal(t, 136, points)
	assert.Equal(t, models.LevelIntermediate, level)
}

func TestScoringServiceSettingsFallback(t *testing.T) {
	db := newTestDB(t)
	db.Close()

	service := NewScoringService(repositories.NewScoreSettingsRepository(db))
	settings := service.Settings()

	assert.Equal(t, models.NewScoreSettings(), settings)
}
