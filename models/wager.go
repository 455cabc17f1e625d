package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WagerStatus string

const (
	WagerPending WagerStatus = "pending"
	WagerWon     WagerStatus = "won"
	WagerLost    WagerStatus = "lost"
	WagerVoid    WagerStatus = "void"
)

// Wager is the monetary stake a Pick carries against the shared bankroll.
// PotentialPayout is the profit component only; the stake is never re-added
// on a win. Status transitions out of "pending" exactly once, and ResultDate
// is set iff the wager has been settled.
type Wager struct {
	gorm.Model
	ID              uint `gorm:"primaryKey"`
	PickID          uint `gorm:"uniqueIndex"`
	Pick            Pick `gorm:"foreignKey:PickID"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2)"`
	Odds            int
	PotentialPayout decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status          WagerStatus     `gorm:"size:8; default:pending"`
	PlacedDate      time.Time
	ResultDate      *time.Time
}
