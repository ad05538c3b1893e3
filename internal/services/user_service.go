package services

import (
	"errors"

	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
)

type UserService struct {
	userRepo   *repositories.UserRepository
	prRepo     *repositories.PullRequestRepository
	manualRepo *repositories.ManualRankRepository
}

func NewUserService(
	userRepo *repositories.UserRepository,
	prRepo *repositories.PullRequestRepository,
	manualRepo *repositories.ManualRankRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		prRepo:     prRepo,
		manualRepo: manualRepo,
	}
}

// GetUser retrieves one user with the override overlay applied
func (s *UserService) GetUser(login string) (*models.User, error) {
	if login == "" {
		return nil, errors.New("username is required")
	}

	user, err := s.userRepo.GetByLogin(login)
	if err != nil {
		return nil, err
	}

	overrides, err := s.manualRepo.GetAll()
	if err != nil {
		return nil, err
	}
	applyOverrides([]*models.User{user}, overrides)

	return user, nil
}

// UserDetail is the admin detail view: a user plus their stored PRs.
type UserDetail struct {
	Login        string                `json:"login"`
	AvatarURL    string                `json:"avatar_url"`
	PullRequests []*models.PullRequest `json:"pullRequests"`
}

// GetUserDetail retrieves a user's stored pull requests for review
func (s *UserService) GetUserDetail(login string) (*UserDetail, error) {
	user, err := s.GetUser(login)
	if err != nil {
		return nil, err
	}

	prs, err := s.prRepo.GetByLogin(login)
	if err != nil {
		return nil, err
	}
	if prs == nil {
		prs = []*models.PullRequest{}
	}

	return &UserDetail{
		Login:        user.Login,
		AvatarURL:    user.AvatarURL,
		PullRequests: prs,
	}, nil
}
