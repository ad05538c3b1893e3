package services

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory SQLite database with the schema loaded.
// Single connection, or each query would see a different empty memory DB.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_create_tables.sql"))
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser inserts one user with the given points. Insertion order matters
// for tie-break tests, so callers seed in the order they want stored.
func seedUser(t *testing.T, repo *repositories.UserRepository, login string, points int, stats models.ContributionStats) {
	t.Helper()

	stats.Points = points
	if stats.Level == "" {
		stats.Level = models.LevelNewcomer
	}

	err := repo.Upsert(&models.User{
		Login:      login,
		AvatarURL:  "https://avatars.example.com/" + login,
		LastActive: time.Now(),
		Stats:      stats,
	})
	require.NoError(t, err)
}
