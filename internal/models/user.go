package models

import (
	"time"
)

// ContributionStats holds the per-user GitHub activity counters and the
// score derived from them. ManualRank and Hidden come from the admin
// override record, not from GitHub.
type ContributionStats struct {
	TotalPRs      int    `json:"totalPRs"`
	MergedPRs     int    `json:"mergedPRs"`
	Contributions int    `json:"contributions"`
	OrgPRs        int    `json:"orgPRs"`
	OrgMergedPRs  int    `json:"orgMergedPRs"`
	Points        int    `json:"points"`
	Level         string `json:"level"`
	ManualRank    *int   `json:"manualRank,omitempty"`
	Hidden        bool   `json:"hidden"`
}

// User is a SkillFest participant, keyed by GitHub login. Created on first
// successful sync, updated on every later sync or admin edit, never deleted.
type User struct {
	Login      string            `json:"login"`
	AvatarURL  string            `json:"avatar_url"`
	LastActive time.Time         `json:"lastActive"`
	Stats      ContributionStats `json:"stats"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
