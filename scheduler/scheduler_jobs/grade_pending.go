package scheduler_jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync/atomic"
	"time"

	"garyPicks/models"
	"garyPicks/services/common"
	"garyPicks/services/gradeService"
	"garyPicks/services/ledgerService"
	"garyPicks/services/notifyService"
	"garyPicks/services/pickService"
	"garyPicks/services/scoreService"
	"garyPicks/services/userService"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNotReady means the game exists but has not finished; the pick stays
// pending and the next sweep retries it.
var ErrNotReady = errors.New("game not completed yet")

// Deps bundles everything a grading sweep needs.
type Deps struct {
	DB          *gorm.DB
	Normalizer  *scoreService.Normalizer
	Notifier    *notifyService.Notifier
	Metrics     *common.SweepMetrics
	GraceWindow time.Duration
}

// SweepSummary reports what one sweep did. The sweep never returns a fatal
// error for a single bad pick; failures are isolated per item.
type SweepSummary struct {
	Graded  int
	Skipped int
	Failed  int
}

// Evaluation is the computed settlement for a pick, prior to commit.
type Evaluation struct {
	Result     models.PickResult
	Detail     string
	FinalScore string
	LegResults []models.PickResult
	// WonLegOdds is set when a parlay won with pushed legs: the payout is
	// recomputed from these odds only.
	WonLegOdds      []int
	RecomputePayout bool
}

var sweepRunning atomic.Bool

// GradePendingPicks runs one grading sweep: find pending picks past the grace
// window, evaluate each against final scores, and commit result + bankroll +
// user outcomes. Overlapping timer fires are skipped outright; the
// conditional-update guards in the commit path make any remaining overlap
// harmless.
func GradePendingPicks(deps Deps) (summary SweepSummary, err error) {
	if !sweepRunning.CompareAndSwap(false, true) {
		log.Println("Grading sweep already running, skipping")
		if deps.Metrics != nil {
			deps.Metrics.SweepsSkipped.Inc()
		}
		return summary, nil
	}
	defer sweepRunning.Store(false)

	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in GradePendingPicks", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in GradePendingPicks: %v", r)
		}
	}()

	start := time.Now()
	if deps.Metrics != nil {
		deps.Metrics.SweepsTotal.Inc()
		defer func() {
			deps.Metrics.SweepDuration.Observe(time.Since(start).Seconds())
		}()
	}

	cutoff := time.Now().Add(-deps.GraceWindow)
	var picks []models.Pick
	result := deps.DB.Preload("Legs").
		Where("result = ? AND game_time < ?", models.ResultPending, cutoff).
		Find(&picks)
	if result.Error != nil {
		return summary, result.Error
	}

	if len(picks) == 0 {
		return summary, nil
	}
	log.Printf("Grading sweep: %d pending picks past grace window", len(picks))

	ctx := context.Background()
	for _, pick := range picks {
		eval, evalErr := EvaluatePick(ctx, deps.Normalizer, pick)
		if evalErr != nil {
			if errors.Is(evalErr, ErrNotReady) ||
				errors.Is(evalErr, scoreService.ErrGameNotFound) ||
				errors.Is(evalErr, scoreService.ErrStatNotFound) {
				summary.Skipped++
				if deps.Metrics != nil {
					deps.Metrics.PicksSkipped.Inc()
				}
				continue
			}

			summary.Failed++
			if deps.Metrics != nil {
				deps.Metrics.PicksFailed.Inc()
			}
			log.Printf("Error evaluating pick %d: %v", pick.ID, evalErr)
			deps.DB.Create(&models.ErrorLog{
				Source:  "grade_pending",
				Message: fmt.Sprintf("pick %d: %v", pick.ID, evalErr),
			})
			continue
		}

		if commitErr := commitGradedPick(deps, pick, eval); commitErr != nil {
			summary.Failed++
			if deps.Metrics != nil {
				deps.Metrics.PicksFailed.Inc()
			}
			log.Printf("Error committing pick %d: %v", pick.ID, commitErr)
			deps.DB.Create(&models.ErrorLog{
				Source:  "grade_pending",
				Message: fmt.Sprintf("pick %d commit: %v", pick.ID, commitErr),
			})
			continue
		}

		summary.Graded++
		if deps.Metrics != nil {
			deps.Metrics.PicksGraded.WithLabelValues(string(eval.Result)).Inc()
		}
	}

	log.Printf("Grading sweep done: %d graded, %d skipped, %d failed",
		summary.Graded, summary.Skipped, summary.Failed)
	return summary, nil
}

// EvaluatePick turns a pending pick into a settlement Evaluation. It performs
// no writes. An unparsable pick evaluates to a diagnostic push rather than an
// error, so it is settled and never silently dropped.
func EvaluatePick(ctx context.Context, normalizer *scoreService.Normalizer, pick models.Pick) (Evaluation, error) {
	if pick.BetType == models.BetParlay {
		return evaluateParlay(ctx, normalizer, pick)
	}

	desc, err := pickService.Parse(pick.PickText, pick.BetType, pick.HomeTeam, pick.AwayTeam)
	if err != nil {
		return diagnosticPush(err), nil
	}

	if desc.Kind == models.BetPlayerProp {
		actual, statErr := normalizer.PlayerStatFor(ctx, pick.League, desc.Player, desc.Stat, pick.GameTime)
		if statErr != nil {
			return Evaluation{}, statErr
		}
		outcome := gradeService.GradeProp(desc, actual)
		return Evaluation{
			Result:     outcome.Result,
			Detail:     outcome.Detail,
			FinalScore: fmt.Sprintf("%s %s: %.1f", desc.Player, desc.Stat, actual),
		}, nil
	}

	score, err := normalizer.FinalScoreFor(ctx, pick.League, pick.HomeTeam, pick.AwayTeam, pick.GameTime)
	if err != nil {
		return Evaluation{}, err
	}
	if !score.Completed {
		return Evaluation{}, ErrNotReady
	}

	outcome := gradeService.Grade(desc, *score)
	return Evaluation{
		Result:     outcome.Result,
		Detail:     outcome.Detail,
		FinalScore: formatScore(pick.HomeTeam, pick.AwayTeam, score.HomeScore, score.AwayScore),
	}, nil
}

func evaluateParlay(ctx context.Context, normalizer *scoreService.Normalizer, pick models.Pick) (Evaluation, error) {
	if len(pick.Legs) == 0 {
		return diagnosticPush(errors.New("parlay has no legs")), nil
	}

	descs, err := pickService.ParseLegs(pick.Legs)
	if err != nil {
		return diagnosticPush(err), nil
	}

	legOutcomes := make([]gradeService.Outcome, 0, len(pick.Legs))
	legResults := make([]models.PickResult, 0, len(pick.Legs))
	finalScore := ""
	var wonLegOdds []int

	for i, leg := range pick.Legs {
		desc := descs.Legs[i]

		var outcome gradeService.Outcome
		if desc.Kind == models.BetPlayerProp {
			actual, statErr := normalizer.PlayerStatFor(ctx, leg.League, desc.Player, desc.Stat, pick.GameTime)
			if statErr != nil {
				return Evaluation{}, fmt.Errorf("leg %d: %w", leg.LegOrder, statErr)
			}
			outcome = gradeService.GradeProp(desc, actual)
			finalScore = appendScore(finalScore, fmt.Sprintf("%s %s: %.1f", desc.Player, desc.Stat, actual))
		} else {
			score, scoreErr := normalizer.FinalScoreFor(ctx, leg.League, leg.HomeTeam, leg.AwayTeam, pick.GameTime)
			if scoreErr != nil {
				return Evaluation{}, fmt.Errorf("leg %d: %w", leg.LegOrder, scoreErr)
			}
			if !score.Completed {
				return Evaluation{}, fmt.Errorf("leg %d: %w", leg.LegOrder, ErrNotReady)
			}
			outcome = gradeService.Grade(desc, *score)
			finalScore = appendScore(finalScore, formatScore(leg.HomeTeam, leg.AwayTeam, score.HomeScore, score.AwayScore))
		}

		legOutcomes = append(legOutcomes, outcome)
		legResults = append(legResults, outcome.Result)
		if outcome.Result == models.ResultWon {
			wonLegOdds = append(wonLegOdds, leg.Odds)
		}
	}

	folded := gradeService.FoldParlay(legOutcomes)
	eval := Evaluation{
		Result:     folded.Result,
		Detail:     folded.Detail,
		FinalScore: finalScore,
		LegResults: legResults,
	}

	// A parlay that won with pushed legs pays out on the surviving legs only.
	if folded.Result == models.ResultWon && len(wonLegOdds) < len(pick.Legs) {
		eval.WonLegOdds = wonLegOdds
		eval.RecomputePayout = true
	}

	return eval, nil
}

// commitGradedPick persists an evaluation. The pick's result flips last:
// while it stays pending, the next sweep re-runs the whole pipeline, and the
// conditional-UPDATE guards in the ledger and reconciler make that re-run
// safe. A transient failure in wager settlement or reconciliation therefore
// self-heals instead of stranding a settled pick with a pending wager.
func commitGradedPick(deps Deps, pick models.Pick, eval Evaluation) error {
	for i, leg := range pick.Legs {
		if i >= len(eval.LegResults) {
			break
		}
		if err := deps.DB.Model(&models.PickLeg{}).
			Where("id = ?", leg.ID).
			Update("result", eval.LegResults[i]).Error; err != nil {
			log.Printf("Error saving leg %d of pick %d: %v", leg.ID, pick.ID, err)
		}
	}

	delta := decimal.Zero
	var wager models.Wager
	wagerRes := deps.DB.Where("pick_id = ?", pick.ID).First(&wager)
	if wagerRes.Error == nil {
		payout := wager.PotentialPayout
		if eval.RecomputePayout {
			payout = common.ParlayProfit(wager.Amount, eval.WonLegOdds)
		}

		settled, settleErr := ledgerService.SettleWager(deps.DB, wager, eval.Result, payout)
		if settleErr != nil {
			if errors.Is(settleErr, ledgerService.ErrAlreadySettled) {
				log.Printf("wager %d already settled, skipping", wager.ID)
			} else {
				return fmt.Errorf("settling wager %d: %w", wager.ID, settleErr)
			}
		} else {
			delta = settled
			if deps.Metrics != nil {
				status, _ := ledgerService.SettlementDelta(wager, eval.Result, payout)
				deps.Metrics.WagersSettled.WithLabelValues(string(status)).Inc()
			}
		}
	} else if !errors.Is(wagerRes.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("loading wager for pick %d: %w", pick.ID, wagerRes.Error)
	}

	if err := userService.ReconcileAllForPick(deps.DB, pick.ID, eval.Result); err != nil {
		return fmt.Errorf("reconciling decisions for pick %d: %w", pick.ID, err)
	}

	res := deps.DB.Model(&models.Pick{}).
		Where("id = ? AND result = ?", pick.ID, models.ResultPending).
		Updates(map[string]interface{}{
			"result":        eval.Result,
			"final_score":   eval.FinalScore,
			"result_detail": eval.Detail,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Another sweep graded this pick; the guarded settle and reconcile
		// calls above were no-ops, so nothing double-counted.
		log.Printf("pick %d already graded, skipping commit", pick.ID)
		return nil
	}

	graded := pick
	graded.Result = eval.Result
	graded.FinalScore = &eval.FinalScore
	deps.Notifier.AnnounceGradedPick(graded, eval.Result, eval.Detail, delta)

	return nil
}

func diagnosticPush(cause error) Evaluation {
	return Evaluation{
		Result:     models.ResultPush,
		Detail:     fmt.Sprintf("voided, pick text not understood: %v", cause),
		FinalScore: "N/A",
	}
}

func formatScore(homeTeam, awayTeam string, homeScore, awayScore int) string {
	return fmt.Sprintf("%s %d - %s %d", homeTeam, homeScore, awayTeam, awayScore)
}

func appendScore(existing, next string) string {
	if existing == "" {
		return next
	}
	return existing + "; " + next
}
