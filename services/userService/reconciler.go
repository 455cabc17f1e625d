package userService

import (
	"fmt"
	"log"
	"strings"

	"garyPicks/models"
	"garyPicks/services/common"

	"gorm.io/gorm"
)

// DeriveOutcome maps a pick result onto a user's personal outcome. Riding
// takes the result as-is; fading inverts won/lost; push passes through either
// way.
func DeriveOutcome(decision models.Decision, pickResult models.PickResult) models.PickResult {
	if decision == models.DecisionFade {
		return common.InvertResult(pickResult)
	}
	return pickResult
}

// ApplyOutcome folds a settled outcome into a user's running stats. Pushes
// count toward TotalPicks and the recent history but touch neither the
// win/loss counters nor the streak.
func ApplyOutcome(stats *models.UserStats, outcome models.PickResult) {
	stats.TotalPicks++
	stats.RecentResults = prependResult(stats.RecentResults, outcome)

	switch outcome {
	case models.ResultWon:
		stats.WinCount++
		if stats.CurrentStreak > 0 {
			stats.CurrentStreak++
		} else {
			stats.CurrentStreak = 1
		}
	case models.ResultLost:
		stats.LossCount++
		if stats.CurrentStreak < 0 {
			stats.CurrentStreak--
		} else {
			stats.CurrentStreak = -1
		}
	default:
		return
	}

	streakLen := stats.CurrentStreak
	if streakLen < 0 {
		streakLen = -streakLen
	}
	if streakLen > stats.LongestStreak {
		stats.LongestStreak = streakLen
	}
}

func prependResult(history string, outcome models.PickResult) string {
	code := "P"
	switch outcome {
	case models.ResultWon:
		code = "W"
	case models.ResultLost:
		code = "L"
	}

	entries := []string{code}
	if history != "" {
		entries = append(entries, strings.Split(history, ",")...)
	}
	if len(entries) > models.RecentResultsMax {
		entries = entries[:models.RecentResultsMax]
	}
	return strings.Join(entries, ",")
}

// ReconcileDecision records a user's personal outcome for a graded pick and
// updates their stats, at most once. The outcome write is a conditional
// UPDATE keyed on outcome IS NULL; a second sweep hitting the same decision
// is a silent no-op and must not double-count stats. The outcome flip and
// the stats save commit together: if the stats save fails, the flip rolls
// back and the next sweep retries both.
func ReconcileDecision(db *gorm.DB, decision models.UserDecision, pickResult models.PickResult) error {
	outcome := DeriveOutcome(decision.Decision, pickResult)

	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserDecision{}).
			Where("id = ? AND outcome IS NULL", decision.ID).
			Update("outcome", outcome)
		if res.Error != nil {
			return fmt.Errorf("recording outcome for user %s pick %d: %w", decision.UserID, decision.PickID, res.Error)
		}
		if res.RowsAffected == 0 {
			log.Printf("decision %d already reconciled, skipping", decision.ID)
			return nil
		}

		var stats models.UserStats
		if err := tx.FirstOrCreate(&stats, models.UserStats{UserID: decision.UserID}).Error; err != nil {
			return fmt.Errorf("loading stats for user %s: %w", decision.UserID, err)
		}

		ApplyOutcome(&stats, outcome)
		if err := tx.Save(&stats).Error; err != nil {
			return fmt.Errorf("saving stats for user %s: %w", decision.UserID, err)
		}

		return nil
	})
}

// ReconcileAllForPick reconciles every recorded decision on a pick. Failures
// are isolated per decision so one bad row cannot strand the rest.
func ReconcileAllForPick(db *gorm.DB, pickID uint, pickResult models.PickResult) error {
	var decisions []models.UserDecision
	if err := db.Where("pick_id = ?", pickID).Find(&decisions).Error; err != nil {
		return fmt.Errorf("listing decisions for pick %d: %w", pickID, err)
	}

	var firstErr error
	for _, decision := range decisions {
		if err := ReconcileDecision(db, decision, pickResult); err != nil {
			log.Printf("Error reconciling decision %d: %v", decision.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
