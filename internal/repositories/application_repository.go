package repositories

import (
	"database/sql"

	"github.com/nst-sdc/skillfest-server/internal/models"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

// Create inserts a new application submission. The table is insert-only.
func (r *ApplicationRepository) Create(app *models.Application) error {
	query := `
		INSERT INTO applications (id, login, name, email, year, branch, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		app.ID,
		app.Login,
		app.Name,
		app.Email,
		app.Year,
		app.Branch,
		app.Reason,
	)
	return err
}

// GetAll retrieves all submissions, newest first
func (r *ApplicationRepository) GetAll() ([]*models.Application, error) {
	query := `
		SELECT id, login, name, email, year, branch, reason, created_at
		FROM applications ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(
			&app.ID,
			&app.Login,
			&app.Name,
			&app.Email,
			&app.Year,
			&app.Branch,
			&app.Reason,
			&app.CreatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, &app)
	}

	return apps, rows.Err()
}
