package models

import (
	"time"
)

// Admin table sort keys.
type SortOption string

const (
	SortByPoints        SortOption = "points"
	SortByPRs           SortOption = "prs"
	SortByMergedPRs     SortOption = "mergedPrs"
	SortByContributions SortOption = "contributions"
	SortByDate          SortOption = "date"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// LeaderboardEntry is one row of the public leaderboard view. Rank is the
// automatic position after sorting by points; ManualRank, when present, is
// the administrator override displayed in its place.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	Login      string `json:"login"`
	AvatarURL  string `json:"avatar_url"`
	Points     int    `json:"points"`
	Level      string `json:"level"`
	ManualRank *int   `json:"manualRank,omitempty"`
}

// Leaderboard is the full public view. When Visible is false Entries is
// empty regardless of stored data.
type Leaderboard struct {
	Visible     bool               `json:"visible"`
	LastUpdated time.Time          `json:"lastUpdated"`
	Entries     []LeaderboardEntry `json:"entries"`
}
