package models

import "gorm.io/gorm"

type Decision string

const (
	DecisionRide Decision = "ride"
	DecisionFade Decision = "fade"
)

// UserDecision records a user riding or fading a Pick. Outcome is the user's
// personal result: a fade inverts won/lost, a push passes through. It is set
// exactly once, when the parent Pick is graded.
type UserDecision struct {
	gorm.Model
	ID       uint   `gorm:"primaryKey"`
	UserID   string `gorm:"uniqueIndex:user_pick_idx; size:64"`
	PickID   uint   `gorm:"uniqueIndex:user_pick_idx"`
	Pick     Pick   `gorm:"foreignKey:PickID"`
	Decision Decision    `gorm:"size:8"`
	Outcome  *PickResult `gorm:"size:8"`
}
