package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type League string

const (
	LeagueNBA    League = "NBA"
	LeagueMLB    League = "MLB"
	LeagueNHL    League = "NHL"
	LeagueNFL    League = "NFL"
	LeagueSoccer League = "SOCCER"
	LeagueParlay League = "PARLAY"
)

type BetType string

const (
	BetMoneyline  BetType = "moneyline"
	BetSpread     BetType = "spread"
	BetTotal      BetType = "total"
	BetPlayerProp BetType = "player_prop"
	BetParlay     BetType = "parlay"
)

type PickResult string

const (
	ResultPending PickResult = "pending"
	ResultWon     PickResult = "won"
	ResultLost    PickResult = "lost"
	ResultPush    PickResult = "push"
)

// Pick is a single recorded prediction awaiting grading. Result is terminal:
// once it leaves "pending" it must never be overwritten.
type Pick struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	ExternalID   string `gorm:"uniqueIndex; size:36"`
	League       League `gorm:"size:16"`
	HomeTeam     string `gorm:"size:64"`
	AwayTeam     string `gorm:"size:64"`
	BetType      BetType `gorm:"size:16"`
	PickText     string
	PlacedAt     time.Time
	GameTime     time.Time
	Result       PickResult `gorm:"size:8; default:pending"`
	FinalScore   *string
	ResultDetail *string
	Legs         []PickLeg
}

// BeforeCreate assigns an external id for picks created without one, so
// collaborators always have a stable opaque handle.
func (p *Pick) BeforeCreate(tx *gorm.DB) error {
	if p.ExternalID == "" {
		p.ExternalID = uuid.NewString()
	}
	return nil
}

// PickLeg is one component of a parlay Pick. Legs carry their own odds so a
// parlay payout can be recomputed when some legs push.
type PickLeg struct {
	gorm.Model
	ID       uint `gorm:"primaryKey"`
	PickID   uint
	Pick     Pick `gorm:"foreignKey:PickID"`
	LegOrder int
	League   League  `gorm:"size:16"`
	HomeTeam string  `gorm:"size:64"`
	AwayTeam string  `gorm:"size:64"`
	BetType  BetType `gorm:"size:16"`
	PickText string
	Odds     int
	Result   PickResult `gorm:"size:8; default:pending"`
}
