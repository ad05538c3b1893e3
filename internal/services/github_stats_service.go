package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
	"github.com/nst-sdc/skillfest-server/pkg/config"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
	"golang.org/x/oauth2"
)

// GitHubStatsService counts a user's pull-request activity through the
// GitHub Search API and aggregates commit contributions across the
// organization's repositories.
type GitHubStatsService struct {
	userRepo *repositories.UserRepository
	prRepo   *repositories.PullRequestRepository
	scoring  *ScoringService
}

func NewGitHubStatsService(
	userRepo *repositories.UserRepository,
	prRepo *repositories.PullRequestRepository,
	scoring *ScoringService,
) *GitHubStatsService {
	return &GitHubStatsService{
		userRepo: userRepo,
		prRepo:   prRepo,
		scoring:  scoring,
	}
}

// NewClient creates a GitHub client authenticated with the provided token
func (s *GitHubStatsService) NewClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return github.NewClient(tc)
}

// SyncUser fetches a user's PR counts and contributions from GitHub,
// computes points and level, and persists the result. When the remaining
// API quota is below the configured floor, the previously stored stats are
// returned instead of burning the last requests.
func (s *GitHubStatsService) SyncUser(ctx context.Context, token, login, avatarURL string) (*models.User, error) {
	client := s.NewClient(token)
	org := config.AppConfig.GitHub.Organization

	if s.rateLimited(ctx, client) {
		stored, err := s.userRepo.GetByLogin(login)
		if err != nil {
			return nil, errors.New("GitHub rate limit low and no cached stats available")
		}
		logger.Warnf("GitHub rate limit low, serving stored stats for %s", login)
		return stored, nil
	}

	stats := models.ContributionStats{}
	counts := []struct {
		query string
		dest  *int
	}{
		{fmt.Sprintf("type:pr author:%s", login), &stats.TotalPRs},
		{fmt.Sprintf("type:pr author:%s is:merged", login), &stats.MergedPRs},
		{fmt.Sprintf("type:pr author:%s org:%s", login, org), &stats.OrgPRs},
		{fmt.Sprintf("type:pr author:%s org:%s is:merged", login, org), &stats.OrgMergedPRs},
	}

	for _, c := range counts {
		total, err := s.searchCount(ctx, client, c.query)
		if err != nil {
			// A single failed count defaults to 0, same as a missing field
			logger.WithError(err).Warnf("Search failed for %q", c.query)
			continue
		}
		*c.dest = total
	}

	contributions, err := s.countContributions(ctx, client, org, login)
	if err != nil {
		logger.WithError(err).Warnf("Failed to count contributions for %s", login)
	}
	stats.Contributions = contributions

	stats.Points, stats.Level = s.scoring.Score(stats)

	user := &models.User{
		Login:      login,
		AvatarURL:  avatarURL,
		LastActive: time.Now(),
		Stats:      stats,
	}

	if err := s.userRepo.Upsert(user); err != nil {
		return nil, fmt.Errorf("failed to store user stats: %w", err)
	}

	prs, err := s.fetchPullRequestDetails(ctx, client, org, login)
	if err != nil {
		logger.WithError(err).Warnf("Failed to fetch PR details for %s", login)
	} else if err := s.prRepo.ReplaceForUser(login, prs); err != nil {
		logger.WithError(err).Errorf("Failed to store PR details for %s", login)
	}

	return user, nil
}

// FetchOpenIssues lists open issues across the organization's repositories.
// Per-repo failures are logged and skipped.
func (s *GitHubStatsService) FetchOpenIssues(ctx context.Context, token string) ([]models.Issue, error) {
	client := s.NewClient(token)
	org := config.AppConfig.GitHub.Organization

	repos, err := s.listOrgRepos(ctx, client, org)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization repositories: %w", err)
	}

	var issues []models.Issue
	for _, repo := range repos {
		opts := &github.IssueListByRepoOptions{
			State:     "open",
			Sort:      "created",
			Direction: "desc",
			ListOptions: github.ListOptions{
				PerPage: 100,
			},
		}

		repoIssues, _, err := client.Issues.ListByRepo(ctx, org, repo.GetName(), opts)
		if err != nil {
			logger.WithError(err).Warnf("Failed to list issues for %s/%s", org, repo.GetName())
			continue
		}

		for _, issue := range repoIssues {
			if issue.IsPullRequest() {
				continue
			}
			labels := make([]models.IssueLabel, 0, len(issue.Labels))
			for _, label := range issue.Labels {
				labels = append(labels, models.IssueLabel{
					Name:  label.GetName(),
					Color: label.GetColor(),
				})
			}
			issues = append(issues, models.Issue{
				ID:         issue.GetID(),
				Title:      issue.GetTitle(),
				HTMLURL:    issue.GetHTMLURL(),
				Repository: repo.GetName(),
				Labels:     labels,
			})
		}
	}

	return issues, nil
}

// rateLimited reports whether the remaining core quota is below the floor.
// A failed rate lookup is treated as not limited.
func (s *GitHubStatsService) rateLimited(ctx context.Context, client *github.Client) bool {
	limits, _, err := client.RateLimit.Get(ctx)
	if err != nil {
		logger.WithError(err).Debugf("Rate limit check failed")
		return false
	}
	return limits.GetCore().Remaining < config.AppConfig.Sync.MinRateRemaining
}

// searchCount returns the total hit count for a search query
func (s *GitHubStatsService) searchCount(ctx context.Context, client *github.Client, query string) (int, error) {
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{
			PerPage: 1,
		},
	}

	result, _, err := client.Search.Issues(ctx, query, opts)
	if err != nil {
		return 0, err
	}
	return result.GetTotal(), nil
}

// countContributions sums the user's commit totals from the contributor
// statistics of every organization repository. A 202 (GitHub still
// computing) or any per-repo failure is logged and skipped.
func (s *GitHubStatsService) countContributions(ctx context.Context, client *github.Client, org, login string) (int, error) {
	repos, err := s.listOrgRepos(ctx, client, org)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, repo := range repos {
		stats, _, err := client.Repositories.ListContributorsStats(ctx, org, repo.GetName())
		if err != nil {
			var accepted *github.AcceptedError
			if errors.As(err, &accepted) {
				logger.Debugf("Statistics for %s/%s still computing, skipping", org, repo.GetName())
			} else {
				logger.WithError(err).Warnf("Failed to fetch stats for %s/%s", org, repo.GetName())
			}
			continue
		}

		for _, contributor := range stats {
			if contributor.GetAuthor().GetLogin() == login {
				total += contributor.GetTotal()
				break
			}
		}
	}

	return total, nil
}

// fetchPullRequestDetails collects the denormalized PR list backing the
// admin detail view: the user's merged org PRs plus all their open PRs.
// Only the first search page is kept; 100 PRs is plenty for the view.
func (s *GitHubStatsService) fetchPullRequestDetails(ctx context.Context, client *github.Client, org, login string) ([]*models.PullRequest, error) {
	var prs []*models.PullRequest

	merged, err := s.searchItems(ctx, client, fmt.Sprintf("type:pr author:%s org:%s is:merged", login, org))
	if err != nil {
		return nil, err
	}
	for _, issue := range merged {
		pr := issueToPullRequest(issue, org)
		pr.State = models.PRStateMerged
		// The search API has no merged_at; closed_at is the best available
		if issue.ClosedAt != nil {
			mergedAt := issue.GetClosedAt().Time
			pr.MergedAt = &mergedAt
		}
		prs = append(prs, pr)
	}

	open, err := s.searchItems(ctx, client, fmt.Sprintf("type:pr author:%s is:open", login))
	if err != nil {
		return nil, err
	}
	for _, issue := range open {
		pr := issueToPullRequest(issue, org)
		pr.State = models.PRStateOpen
		prs = append(prs, pr)
	}

	return prs, nil
}

// searchItems returns the first page of issue items for a search query
func (s *GitHubStatsService) searchItems(ctx context.Context, client *github.Client, query string) ([]*github.Issue, error) {
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	result, _, err := client.Search.Issues(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return result.Issues, nil
}

// listOrgRepos lists all repositories in the organization
func (s *GitHubStatsService) listOrgRepos(ctx context.Context, client *github.Client, org string) ([]*github.Repository, error) {
	var all []*github.Repository
	opts := &github.RepositoryListByOrgOptions{
		Type: "all",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	for {
		repos, resp, err := client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, repos...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func issueToPullRequest(issue *github.Issue, org string) *models.PullRequest {
	return &models.PullRequest{
		ID:        issue.GetID(),
		Title:     issue.GetTitle(),
		URL:       issue.GetHTMLURL(),
		IsOrg:     strings.Contains(issue.GetRepositoryURL(), "/"+org+"/"),
		CreatedAt: issue.GetCreatedAt().Time,
	}
}
