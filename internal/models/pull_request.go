package models

import (
	"time"
)

const (
	PRStateOpen   = "open"
	PRStateMerged = "merged"
)

// PullRequest is a denormalized pull request attached to a user, used by
// the admin detail view. The list is replaced wholesale on every sync.
type PullRequest struct {
	ID        int64      `json:"id"`
	Login     string     `json:"login"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	State     string     `json:"state"`
	IsOrg     bool       `json:"isOrg"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
}
