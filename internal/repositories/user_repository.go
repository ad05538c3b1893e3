package repositories

import (
	"database/sql"

	"github.com/nst-sdc/skillfest-server/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Upsert creates a user on first sync or refreshes stats on later syncs.
func (r *UserRepository) Upsert(user *models.User) error {
	query := `
		INSERT INTO users (login, avatar_url, last_active, total_prs, merged_prs, contributions, org_prs, org_merged_prs, points, level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(login) DO UPDATE SET
			avatar_url = excluded.avatar_url,
			last_active = excluded.last_active,
			total_prs = excluded.total_prs,
			merged_prs = excluded.merged_prs,
			contributions = excluded.contributions,
			org_prs = excluded.org_prs,
			org_merged_prs = excluded.org_merged_prs,
			points = excluded.points,
			level = excluded.level,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query,
		user.Login,
		user.AvatarURL,
		user.LastActive,
		user.Stats.TotalPRs,
		user.Stats.MergedPRs,
		user.Stats.Contributions,
		user.Stats.OrgPRs,
		user.Stats.OrgMergedPRs,
		user.Stats.Points,
		user.Stats.Level,
	)
	return err
}

// GetByLogin retrieves a user by GitHub login
func (r *UserRepository) GetByLogin(login string) (*models.User, error) {
	query := `
		SELECT login, avatar_url, last_active, total_prs, merged_prs, contributions, org_prs, org_merged_prs, points, level, created_at, updated_at
		FROM users WHERE login = ?
	`

	var user models.User
	err := r.db.QueryRow(query, login).Scan(
		&user.Login,
		&user.AvatarURL,
		&user.LastActive,
		&user.Stats.TotalPRs,
		&user.Stats.MergedPRs,
		&user.Stats.Contributions,
		&user.Stats.OrgPRs,
		&user.Stats.OrgMergedPRs,
		&user.Stats.Points,
		&user.Stats.Level,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetAll retrieves all users in insertion order
func (r *UserRepository) GetAll() ([]*models.User, error) {
	query := `
		SELECT login, avatar_url, last_active, total_prs, merged_prs, contributions, org_prs, org_merged_prs, points, level, created_at, updated_at
		FROM users ORDER BY rowid
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.Login,
			&user.AvatarURL,
			&user.LastActive,
			&user.Stats.TotalPRs,
			&user.Stats.MergedPRs,
			&user.Stats.Contributions,
			&user.Stats.OrgPRs,
			&user.Stats.OrgMergedPRs,
			&user.Stats.Points,
			&user.Stats.Level,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// UpdatePoints overwrites a user's points and level
func (r *UserRepository) UpdatePoints(login string, points int, level string) error {
	query := `
		UPDATE users SET points = ?, level = ?, updated_at = CURRENT_TIMESTAMP
		WHERE login = ?
	`

	result, err := r.db.Exec(query, points, level, login)
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
