package gradeService

import (
	"fmt"

	"garyPicks/models"
	"garyPicks/services/common"
	"garyPicks/services/pickService"
	"garyPicks/services/scoreService"
)

// Outcome is a settled grading result with an auditable arithmetic trail.
type Outcome struct {
	Result models.PickResult
	Detail string
}

// Grade settles a moneyline, spread, or total descriptor against a final
// score. Player props go through GradeProp (they need an actual statistic)
// and parlays through FoldParlay.
func Grade(desc pickService.BetDescriptor, score scoreService.FinalScore) Outcome {
	switch desc.Kind {
	case models.BetMoneyline:
		return gradeMoneyline(desc, score)
	case models.BetSpread:
		return gradeSpread(desc, score)
	case models.BetTotal:
		return gradeTotal(desc, score)
	default:
		return Outcome{
			Result: models.ResultPush,
			Detail: fmt.Sprintf("cannot grade bet type %q against a game score", desc.Kind),
		}
	}
}

func gradeMoneyline(desc pickService.BetDescriptor, score scoreService.FinalScore) Outcome {
	if score.HomeScore == score.AwayScore {
		return Outcome{
			Result: models.ResultPush,
			Detail: fmt.Sprintf("%s ML: tied %d-%d (push)", desc.Team, score.HomeScore, score.AwayScore),
		}
	}

	homeWon := score.HomeScore > score.AwayScore
	won := homeWon == desc.PickedHome
	return Outcome{
		Result: resultFromBool(won),
		Detail: fmt.Sprintf("%s ML: %d-%d (%s)", desc.Team, score.HomeScore, score.AwayScore, resultFromBool(won)),
	}
}

func gradeSpread(desc pickService.BetDescriptor, score scoreService.FinalScore) Outcome {
	pickedScore, oppScore := score.AwayScore, score.HomeScore
	if desc.PickedHome {
		pickedScore, oppScore = score.HomeScore, score.AwayScore
	}

	adjusted := float64(pickedScore) + desc.Line
	detail := fmt.Sprintf("%s %s = %.1f vs %d", desc.Team, common.FormatOdds(desc.Line), adjusted, oppScore)

	if adjusted == float64(oppScore) {
		return Outcome{Result: models.ResultPush, Detail: detail + " (push)"}
	}
	won := adjusted > float64(oppScore)
	return Outcome{
		Result: resultFromBool(won),
		Detail: fmt.Sprintf("%s (%s)", detail, resultFromBool(won)),
	}
}

func gradeTotal(desc pickService.BetDescriptor, score scoreService.FinalScore) Outcome {
	sum := score.HomeScore + score.AwayScore
	direction := "Under"
	if desc.Over {
		direction = "Over"
	}
	detail := fmt.Sprintf("%s %s: total %d", direction, common.FormatOdds(desc.Line), sum)

	if float64(sum) == desc.Line {
		return Outcome{Result: models.ResultPush, Detail: detail + " (push)"}
	}

	var won bool
	if desc.Over {
		won = float64(sum) > desc.Line
	} else {
		won = float64(sum) < desc.Line
	}
	return Outcome{
		Result: resultFromBool(won),
		Detail: fmt.Sprintf("%s (%s)", detail, resultFromBool(won)),
	}
}

// GradeProp settles a player-prop descriptor against the player's actual
// statistic.
func GradeProp(desc pickService.BetDescriptor, actual float64) Outcome {
	direction := "Under"
	if desc.Over {
		direction = "Over"
	}
	detail := fmt.Sprintf("%s %s %s %s: actual %.1f", desc.Player, direction, common.FormatOdds(desc.Line), desc.Stat, actual)

	if actual == desc.Line {
		return Outcome{Result: models.ResultPush, Detail: detail + " (push)"}
	}

	var won bool
	if desc.Over {
		won = actual > desc.Line
	} else {
		won = actual < desc.Line
	}
	return Outcome{
		Result: resultFromBool(won),
		Detail: fmt.Sprintf("%s (%s)", detail, resultFromBool(won)),
	}
}

// FoldParlay combines independently graded legs into an overall parlay
// result. Any lost leg loses the parlay. All legs pushing pushes the parlay.
// A mix of won and pushed legs wins: pushed legs simply drop out, and the
// caller recomputes the payout from the surviving legs' odds.
func FoldParlay(legs []Outcome) Outcome {
	if len(legs) == 0 {
		return Outcome{Result: models.ResultPush, Detail: "parlay has no legs (push)"}
	}

	wonCount, pushCount := 0, 0
	for i, leg := range legs {
		switch leg.Result {
		case models.ResultLost:
			return Outcome{
				Result: models.ResultLost,
				Detail: fmt.Sprintf("leg %d lost: %s", i+1, leg.Detail),
			}
		case models.ResultWon:
			wonCount++
		case models.ResultPush:
			pushCount++
		}
	}

	if pushCount == len(legs) {
		return Outcome{
			Result: models.ResultPush,
			Detail: fmt.Sprintf("all %d legs pushed (push)", pushCount),
		}
	}

	detail := fmt.Sprintf("%d of %d legs won (won)", wonCount, len(legs))
	if pushCount > 0 {
		detail = fmt.Sprintf("%d of %d legs won, %d pushed and dropped from the payout (won)", wonCount, len(legs), pushCount)
	}
	return Outcome{Result: models.ResultWon, Detail: detail}
}

func resultFromBool(won bool) models.PickResult {
	if won {
		return models.ResultWon
	}
	return models.ResultLost
}
