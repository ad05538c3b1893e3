package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nst-sdc/skillfest-server/internal/middleware"
	"github.com/nst-sdc/skillfest-server/internal/services"
)

type UserHandler struct {
	userService        *services.UserService
	leaderboardService *services.LeaderboardService
	statsService       *services.GitHubStatsService
}

func NewUserHandler(
	userService *services.UserService,
	leaderboardService *services.LeaderboardService,
	statsService *services.GitHubStatsService,
) *UserHandler {
	return &UserHandler{
		userService:        userService,
		leaderboardService: leaderboardService,
		statsService:       statsService,
	}
}

// SyncUser refreshes the signed-in member's stats from GitHub using the
// token carried in their session.
func (h *UserHandler) SyncUser(c *gin.Context) {
	session := middleware.GetSession(c)

	user, err := h.statsService.SyncUser(c.Request.Context(), session.Token, session.Login, session.AvatarURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUsers lists all tracked users with the override overlay applied
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.leaderboardService.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns one tracked user by login
func (h *UserHandler) GetUser(c *gin.Context) {
	login := c.Param("login")

	user, err := h.userService.GetUser(login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
