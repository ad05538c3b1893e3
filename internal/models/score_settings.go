package models

import (
	"time"
)

// Contribution level labels, in ascending order.
const (
	LevelNewcomer     = "Newcomer"
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// ScoreSettings holds the per-category point weights and the level
// thresholds. A singleton row in the database, seeded with the defaults.
type ScoreSettings struct {
	OrgPR           int       `json:"org_pr"`
	OrgMergedPR     int       `json:"org_merged_pr"`
	GeneralPR       int       `json:"general_pr"`
	GeneralMergedPR int       `json:"general_merged_pr"`
	BeginnerMin     int       `json:"beginner_min"`
	IntermediateMin int       `json:"intermediate_min"`
	AdvancedMin     int       `json:"advanced_min"`
	ExpertMin       int       `json:"expert_min"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewScoreSettings() *ScoreSettings {
	return &ScoreSettings{
		OrgPR:           10,
		OrgMergedPR:     15,
		GeneralPR:       5,
		GeneralMergedPR: 7,
		BeginnerMin:     25,
		IntermediateMin: 100,
		AdvancedMin:     200,
		ExpertMin:       400,
	}
}
