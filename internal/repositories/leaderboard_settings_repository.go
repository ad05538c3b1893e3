package repositories

import (
	"database/sql"

	"github.com/nst-sdc/skillfest-server/internal/models"
)

type LeaderboardSettingsRepository struct {
	db *sql.DB
}

func NewLeaderboardSettingsRepository(db *sql.DB) *LeaderboardSettingsRepository {
	return &LeaderboardSettingsRepository{
		db: db,
	}
}

// Get retrieves the singleton settings row
func (r *LeaderboardSettingsRepository) Get() (*models.LeaderboardSettings, error) {
	query := `SELECT visible, last_updated FROM leaderboard_settings WHERE id = 1`

	var settings models.LeaderboardSettings
	err := r.db.QueryRow(query).Scan(&settings.Visible, &settings.LastUpdated)
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// Update sets the visibility flag and stamps last_updated
func (r *LeaderboardSettingsRepository) Update(visible bool) error {
	query := `
		UPDATE leaderboard_settings SET visible = ?, last_updated = CURRENT_TIMESTAMP
		WHERE id = 1
	`

	result, err := r.db.Exec(query, visible)
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
