package services

import (
	"errors"
	"strings"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
)

type ApplicationService struct {
	applicationRepo *repositories.ApplicationRepository
}

func NewApplicationService(applicationRepo *repositories.ApplicationRepository) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
	}
}

// SubmitApplication validates and stores one fresher-application form
// submission. Submissions are never updated or deleted.
func (s *ApplicationService) SubmitApplication(app *models.Application) error {
	if app.Login == "" {
		return errors.New("login is required")
	}
	if app.Name == "" {
		return errors.New("name is required")
	}
	if app.Email == "" || !strings.Contains(app.Email, "@") {
		return errors.New("a valid email is required")
	}

	return s.applicationRepo.Create(app)
}

// ListApplications retrieves all submissions for the admin view
func (s *ApplicationService) ListApplications() ([]*models.Application, error) {
	return s.applicationRepo.GetAll()
}
