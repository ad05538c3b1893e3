package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nst-sdc/skillfest-server/internal/middleware"
	"github.com/nst-sdc/skillfest-server/internal/services"
	"github.com/nst-sdc/skillfest-server/pkg/config"
)

type IssuesHandler struct {
	statsService *services.GitHubStatsService
	issueCache   *services.IssueCacheService
}

func NewIssuesHandler(statsService *services.GitHubStatsService, issueCache *services.IssueCacheService) *IssuesHandler {
	return &IssuesHandler{
		statsService: statsService,
		issueCache:   issueCache,
	}
}

// GetIssues returns the organization's open issues. Served from cache while
// fresh; on a miss it fetches live and refills the cache. A signed-in
// member's own token is preferred over the server token for the fetch.
func (h *IssuesHandler) GetIssues(c *gin.Context) {
	ctx := c.Request.Context()

	if issues, ok := h.issueCache.GetIssues(ctx); ok {
		c.JSON(http.StatusOK, gin.H{"issues": issues, "cached": true})
		return
	}

	token := config.AppConfig.GitHub.Token
	if session := middleware.GetSession(c); session != nil && session.Token != "" {
		token = session.Token
	}

	issues, err := h.statsService.FetchOpenIssues(ctx, token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch issues from GitHub"})
		return
	}

	h.issueCache.SetIssues(ctx, issues)
	c.JSON(http.StatusOK, gin.H{"issues": issues, "cached": false})
}
