package models

import (
	"time"
)

// LeaderboardSettings is the global singleton gating whether the public
// leaderboard renders data or the hidden placeholder.
type LeaderboardSettings struct {
	Visible     bool      `json:"visible"`
	LastUpdated time.Time `json:"lastUpdated"`
}
