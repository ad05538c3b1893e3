package models

import (
	"time"
)

// ManualRank overlays the automatic point-based ranking for one user.
// A nil ManualRank means "use automatic rank".
type ManualRank struct {
	Login      string    `json:"login"`
	ManualRank *int      `json:"manualRank"`
	Hidden     bool      `json:"hidden"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
