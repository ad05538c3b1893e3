package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nst-sdc/skillfest-server/internal/middleware"
	"github.com/nst-sdc/skillfest-server/internal/services"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
)

type AuthHandler struct {
	githubService *services.GitHubService
	statsService  *services.GitHubStatsService
}

func NewAuthHandler(statsService *services.GitHubStatsService) *AuthHandler {
	return &AuthHandler{
		githubService: services.NewGitHubService(),
		statsService:  statsService,
	}
}

// GitHubLogin initiates GitHub OAuth flow
func (h *AuthHandler) GitHubLogin(c *gin.Context) {
	authURL := h.githubService.GetAuthURL()
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GitHubCallback handles GitHub OAuth callback. A successful sign-in also
// triggers the member's first stats sync so they appear on the leaderboard
// right away.
func (h *AuthHandler) GitHubCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/?error=no_code")
		return
	}

	// Exchange code for token
	token, err := h.githubService.ExchangeCodeForToken(code)
	if err != nil {
		c.Redirect(http.StatusFound, "/?error=token_exchange_failed")
		return
	}

	// Get user info from GitHub
	githubUser, err := h.githubService.GetUserInfo(token)
	if err != nil {
		c.Redirect(http.StatusFound, "/?error=user_info_failed")
		return
	}

	// First sync is best effort; a fetch failure must not block sign-in
	if _, err := h.statsService.SyncUser(c.Request.Context(), token.AccessToken, githubUser.Login, githubUser.AvatarURL); err != nil {
		logger.WithError(err).Warnf("Initial sync failed for %s", githubUser.Login)
	}

	// Create session
	if err := middleware.SetSession(c, githubUser.Login, githubUser.AvatarURL, token.AccessToken, false); err != nil {
		c.Redirect(http.StatusFound, "/?error=session_creation_failed")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}

// Me returns the signed-in user's session identity
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"login":      session.Login,
		"avatar_url": session.AvatarURL,
		"is_admin":   session.IsAdmin,
	})
}
