package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nst-sdc/skillfest-server/internal/middleware"
	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/services"
	"github.com/nst-sdc/skillfest-server/pkg/config"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type AdminHandler struct {
	adminService       *services.AdminService
	leaderboardService *services.LeaderboardService
	userService        *services.UserService
	applicationService *services.ApplicationService
	pointsDebouncer    *services.PointsDebouncer
}

func NewAdminHandler(
	adminService *services.AdminService,
	leaderboardService *services.LeaderboardService,
	userService *services.UserService,
	applicationService *services.ApplicationService,
	pointsDebouncer *services.PointsDebouncer,
) *AdminHandler {
	return &AdminHandler{
		adminService:       adminService,
		leaderboardService: leaderboardService,
		userService:        userService,
		applicationService: applicationService,
		pointsDebouncer:    pointsDebouncer,
	}
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

// Login upgrades the session to admin after a password check. The compare
// is constant time; an empty configured password disables admin entirely.
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	configured := config.AppConfig.Admin.Password
	if configured == "" || subtle.ConstantTimeCompare([]byte(req.Password), []byte(configured)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	login := "admin"
	avatarURL := ""
	token := ""
	if session := middleware.GetSession(c); session != nil {
		login = session.Login
		avatarURL = session.AvatarURL
		token = session.Token
	}

	if err := middleware.SetSession(c, login, avatarURL, token, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": true})
}

// GetLeaderboardSettings returns the global visibility settings
func (h *AdminHandler) GetLeaderboardSettings(c *gin.Context) {
	settings, err := h.adminService.LeaderboardSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

type updateSettingsRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// UpdateLeaderboardSettings sets the global visibility flag
func (h *AdminHandler) UpdateLeaderboardSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visible flag is required"})
		return
	}

	settings, err := h.adminService.UpdateLeaderboardSettings(*req.Visible)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

type updateUserRankRequest struct {
	Login  string `json:"login"`
	Rank   *int   `json:"rank"`
	Points *int   `json:"points"`
}

// UpdateUserRank sets or clears a manual rank and optionally edits points.
// Rank changes apply immediately; point edits are debounced so a burst of
// rapid edits collapses into a single write with the final value.
func (h *AdminHandler) UpdateUserRank(c *gin.Context) {
	var req updateUserRankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login is required"})
		return
	}
	if req.Rank != nil && *req.Rank < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rank must be positive"})
		return
	}
	if req.Points != nil && *req.Points < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points must not be negative"})
		return
	}

	if err := h.adminService.UpdateUserRank(req.Login, req.Rank, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Points != nil {
		h.pointsDebouncer.Schedule(req.Login, *req.Points)
	}

	c.JSON(http.StatusOK, gin.H{"login": req.Login, "rank": req.Rank, "points": req.Points})
}

type toggleVisibilityRequest struct {
	Login  string `json:"login"`
	Hidden *bool  `json:"hidden" binding:"required"`
}

// ToggleUserVisibility hides or unhides one user from the public board
func (h *AdminHandler) ToggleUserVisibility(c *gin.Context) {
	var req toggleVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login and hidden flag are required"})
		return
	}

	if err := h.adminService.ToggleUserVisibility(req.Login, *req.Hidden); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"login": req.Login, "hidden": *req.Hidden})
}

type assignTopRanksRequest struct {
	Count int `json:"count"`
}

// AssignTopRanks pins manual ranks 1..count onto the current top users
func (h *AdminHandler) AssignTopRanks(c *gin.Context) {
	var req assignTopRanksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	assigned, err := h.adminService.AssignTopRanks(req.Count)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assigned": assigned})
}

// ClearManualRanks clears every manual rank and reports how many
func (h *AdminHandler) ClearManualRanks(c *gin.Context) {
	cleared, err := h.adminService.ClearAllManualRanks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "cleared": cleared})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

// RecalculatePoints recomputes every user's points from stored counts
func (h *AdminHandler) RecalculatePoints(c *gin.Context) {
	updated, err := h.adminService.RecalculateAllPoints()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// GetUsers returns the filtered, sorted admin table
func (h *AdminHandler) GetUsers(c *gin.Context) {
	search := c.Query("search")
	level := c.Query("level")
	sortBy := models.SortOption(c.DefaultQuery("sort", string(models.SortByPoints)))
	dir := models.SortDirection(c.DefaultQuery("direction", string(models.SortDesc)))

	users, err := h.leaderboardService.AdminUsers(search, level, sortBy, dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUserDetails returns one user's stored pull requests for review
func (h *AdminHandler) GetUserDetails(c *gin.Context) {
	login := c.Query("username")
	if login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	detail, err := h.userService.GetUserDetail(login)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetApplications lists all fresher-application submissions
func (h *AdminHandler) GetApplications(c *gin.Context) {
	apps, err := h.applicationService.ListApplications()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// ExportUsers streams the full user table as an Excel workbook
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	users, err := h.leaderboardService.AdminUsers("", "", models.SortByPoints, models.SortDesc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warnf("Failed to close export workbook")
		}
	}()

	sheet := "Users"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "Username", "Points", "Level", "Total PRs", "Merged PRs", "Org PRs", "Org Merged PRs", "Contributions", "Manual Rank", "Hidden", "Last Active"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, user := range users {
		row := i + 2
		manualRank := ""
		if user.Stats.ManualRank != nil {
			manualRank = fmt.Sprintf("%d", *user.Stats.ManualRank)
		}

		values := []interface{}{
			i + 1,
			user.Login,
			user.Stats.Points,
			user.Stats.Level,
			user.Stats.TotalPRs,
			user.Stats.MergedPRs,
			user.Stats.OrgPRs,
			user.Stats.OrgMergedPRs,
			user.Stats.Contributions,
			manualRank,
			user.Stats.Hidden,
			user.LastActive.Format("2006-01-02 15:04"),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="skillfest-users.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		logger.WithError(err).Errorf("Failed to write export workbook")
	}
}
