package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nst-sdc/skillfest-server/internal/services"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard returns the public leaderboard. When the global visibility
// flag is off the entry list is empty, with the flag echoed so clients can
// show the hidden state.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	board, err := h.leaderboardService.PublicLeaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, board)
}
