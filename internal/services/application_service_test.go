package services

import (
	"testing"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitApplication(t *testing.T) {
	db := newTestDB(t)
	service := NewApplicationService(repositories.NewApplicationRepository(db))

	app := models.NewApplication("octocat", "Octo Cat", "octo@example.com", "2nd", "CSE", "I love open source")
	require.NoError(t, service.SubmitApplication(app))

	apps, err := service.ListApplications()
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "octocat", apps[0].Login)
	assert.Equal(t, "octo@example.com", apps[0].Email)
	assert.NotEmpty(t, apps[0].ID)
}

func TestSubmitApplicationValidation(t *testing.T) {
	db := newTestDB(t)
	service := NewApplicationService(repositories.NewApplicationRepository(db))

	tests := []struct {
		name string
		app  *models.Application
	}{
		{"missing login", models.NewApplication("", "Octo Cat", "octo@example.com", "", "", "")},
		{"missing name", models.NewApplication("octocat", "", "octo@example.com", "", "", "")},
		{"missing email", models.NewApplication("octocat", "Octo Cat", "", "", "", "")},
		{"malformed email", models.NewApplication("octocat", "Octo Cat", "not-an-email", "", "", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, service.SubmitApplication(tt.app))
		})
	}

	apps, err := service.ListApplications()
	require.NoError(t, err)
	assert.Empty(t, apps)
}
