package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bankroll is the single shared ledger row. CurrentAmount changes only
// through the ledger service, exactly once per settled wager, via an atomic
// column update.
type Bankroll struct {
	gorm.Model
	ID             uint            `gorm:"primaryKey"`
	CurrentAmount  decimal.Decimal `gorm:"type:decimal(12,2)"`
	StartingAmount decimal.Decimal `gorm:"type:decimal(12,2)"`
	LastUpdated    time.Time
}
