package repositories

import (
	"database/sql"

	"github.com/nst-sdc/skillfest-server/internal/models"
)

type PullRequestRepository struct {
	db *sql.DB
}

func NewPullRequestRepository(db *sql.DB) *PullRequestRepository {
	return &PullRequestRepository{
		db: db,
	}
}

// ReplaceForUser swaps a user's stored pull requests for the freshly
// fetched list inside one transaction.
func (r *PullRequestRepository) ReplaceForUser(login string, prs []*models.PullRequest) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pull_requests WHERE login = ?`, login); err != nil {
		return err
	}

	query := `
		INSERT INTO pull_requests (id, login, title, url, state, is_org, created_at, merged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, login) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			state = excluded.state,
			is_org = excluded.is_org,
			created_at = excluded.created_at,
			merged_at = excluded.merged_at
	`

	for _, pr := range prs {
		if _, err := tx.Exec(query,
			pr.ID,
			login,
			pr.Title,
			pr.URL,
			pr.State,
			pr.IsOrg,
			pr.CreatedAt,
			pr.MergedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByLogin retrieves a user's stored pull requests, newest first
func (r *PullRequestRepository) GetByLogin(login string) ([]*models.PullRequest, error) {
	query := `
		SELECT id, login, title, url, state, is_org, created_at, merged_at
		FROM pull_requests WHERE login = ? ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, login)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prs []*models.PullRequest
	for rows.Next() {
		var pr models.PullRequest
		if err := rows.Scan(
			&pr.ID,
			&pr.Login,
			&pr.Title,
			&pr.URL,
			&pr.State,
			&pr.IsOrg,
			&pr.CreatedAt,
			&pr.MergedAt,
		); err != nil {
			return nil, err
		}
		prs = append(prs, &pr)
	}

	return prs, rows.Err()
}
