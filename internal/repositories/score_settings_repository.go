package repositories

import (
	"database/sql"

	"github.com/nst-sdc/skillfest-server/internal/models"
)

type ScoreSettingsRepository struct {
	db *sql.DB
}

func NewScoreSettingsRepository(db *sql.DB) *ScoreSettingsRepository {
	return &ScoreSettingsRepository{
		db: db,
	}
}

// Get retrieves the singleton score settings row
func (r *ScoreSettingsRepository) Get() (*models.ScoreSettings, error) {
	query := `
		SELECT org_pr, org_merged_pr, general_pr, general_merged_pr,
		       beginner_min, intermediate_min, advanced_min, expert_min, updated_at
		FROM score_settings WHERE id = 1
	`

	settings := &models.ScoreSettings{}
	err := r.db.QueryRow(query).Scan(
		&settings.OrgPR,
		&settings.OrgMergedPR,
		&settings.GeneralPR,
		&settings.GeneralMergedPR,
		&settings.BeginnerMin,
		&settings.IntermediateMin,
		&settings.AdvancedMin,
		&settings.ExpertMin,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Update overwrites the score weights and level thresholds
func (r *ScoreSettingsRepository) Update(settings *models.ScoreSettings) error {
	query := `
		UPDATE score_settings
		SET org_pr = ?, org_merged_pr = ?, general_pr = ?, general_merged_pr = ?,
		    beginner_min = ?, intermediate_min = ?, advanced_min = ?, expert_min = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`

	result, err := r.db.Exec(query,
		settings.OrgPR,
		settings.OrgMergedPR,
		settings.GeneralPR,
		settings.GeneralMergedPR,
		settings.BeginnerMin,
		settings.IntermediateMin,
		settings.AdvancedMin,
		settings.ExpertMin,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
