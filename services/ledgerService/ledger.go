package ledgerService

import (
	"errors"
	"time"

	"garyPicks/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrAlreadySettled signals the idempotency guard tripped: the wager was no
// longer pending. Callers treat it as a successful no-op.
var ErrAlreadySettled = errors.New("wager already settled")

// SettlementDelta computes the terminal status and bankroll delta for a wager
// given a pick result. Pure; the payout argument is the profit to credit on a
// win (normally wager.PotentialPayout, recomputed for parlays with pushed
// legs).
func SettlementDelta(wager models.Wager, result models.PickResult, payout decimal.Decimal) (models.WagerStatus, decimal.Decimal) {
	switch result {
	case models.ResultWon:
		return models.WagerWon, payout
	case models.ResultLost:
		return models.WagerLost, wager.Amount.Neg()
	default:
		return models.WagerVoid, decimal.Zero
	}
}

// SettleWager applies a graded result to a wager and the shared bankroll,
// exactly once. The status flip is a conditional UPDATE keyed on
// status = pending; if zero rows are affected another sweep got here first
// and the bankroll must not be touched again. The status flip and the
// bankroll delta commit in one transaction.
func SettleWager(db *gorm.DB, wager models.Wager, result models.PickResult, payout decimal.Decimal) (decimal.Decimal, error) {
	status, delta := SettlementDelta(wager, result, payout)
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wager{}).
			Where("id = ? AND status = ?", wager.ID, models.WagerPending).
			Updates(map[string]interface{}{
				"status":      status,
				"result_date": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadySettled
		}

		if delta.IsZero() {
			return nil
		}

		return tx.Model(&models.Bankroll{}).
			Where("id = ?", 1).
			Updates(map[string]interface{}{
				"current_amount": gorm.Expr("current_amount + ?", delta),
				"last_updated":   now,
			}).Error
	})
	if err != nil {
		return decimal.Zero, err
	}

	return delta, nil
}
