package repositories

import (
	"database/sql"

	"github.com/nst-sdc/skillfest-server/internal/models"
)

type ManualRankRepository struct {
	db *sql.DB
}

func NewManualRankRepository(db *sql.DB) *ManualRankRepository {
	return &ManualRankRepository{
		db: db,
	}
}

// Get retrieves the override record for a user, sql.ErrNoRows when absent
func (r *ManualRankRepository) Get(login string) (*models.ManualRank, error) {
	query := `SELECT login, manual_rank, hidden, updated_at FROM manual_ranks WHERE login = ?`

	var mr models.ManualRank
	err := r.db.QueryRow(query, login).Scan(
		&mr.Login,
		&mr.ManualRank,
		&mr.Hidden,
		&mr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &mr, nil
}

// GetAll retrieves every override record keyed by login
func (r *ManualRankRepository) GetAll() (map[string]*models.ManualRank, error) {
	query := `SELECT login, manual_rank, hidden, updated_at FROM manual_ranks`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranks := make(map[string]*models.ManualRank)
	for rows.Next() {
		var mr models.ManualRank
		if err := rows.Scan(&mr.Login, &mr.ManualRank, &mr.Hidden, &mr.UpdatedAt); err != nil {
			return nil, err
		}
		ranks[mr.Login] = &mr
	}

	return ranks, rows.Err()
}

// GetAllRanked retrieves the logins that currently carry a manual rank
func (r *ManualRankRepository) GetAllRanked() ([]string, error) {
	query := `SELECT login FROM manual_ranks WHERE manual_rank IS NOT NULL`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logins []string
	for rows.Next() {
		var login string
		if err := rows.Scan(&login); err != nil {
			return nil, err
		}
		logins = append(logins, login)
	}

	return logins, rows.Err()
}

// Upsert writes the full override record for a user
func (r *ManualRankRepository) Upsert(mr *models.ManualRank) error {
	query := `
		INSERT INTO manual_ranks (login, manual_rank, hidden, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(login) DO UPDATE SET
			manual_rank = excluded.manual_rank,
			hidden = excluded.hidden,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query, mr.Login, mr.ManualRank, mr.Hidden)
	return err
}

// ClearRank nulls out one user's manual rank, leaving hidden untouched
func (r *ManualRankRepository) ClearRank(login string) error {
	query := `
		UPDATE manual_ranks SET manual_rank = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE login = ?
	`

	_, err := r.db.Exec(query, login)
	return err
}
