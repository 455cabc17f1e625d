package models

import "gorm.io/gorm"

// RecentResultsMax bounds the RecentResults history kept per user.
const RecentResultsMax = 20

// UserStats aggregates a user's settled ride/fade outcomes. CurrentStreak is
// signed: positive for a win streak, negative for a loss streak. RecentResults
// is a comma-separated list of W/L/P codes, most recent first, capped at
// RecentResultsMax entries. Mutated only by the reconciler, once per settled
// decision.
type UserStats struct {
	gorm.Model
	ID            uint   `gorm:"primaryKey"`
	UserID        string `gorm:"uniqueIndex; size:64"`
	WinCount      int
	LossCount     int
	TotalPicks    int
	CurrentStreak int
	LongestStreak int
	RecentResults string `gorm:"size:64"`
}
