package scoreService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"garyPicks/models"
	"garyPicks/services/common"
)

var (
	// ErrGameNotFound means the provider has no matching game at all. The
	// sweep retries on its next pass; this is not a pick failure.
	ErrGameNotFound = errors.New("no matching game found")
	// ErrStatNotFound means the provider cannot supply the requested player
	// statistic.
	ErrStatNotFound = errors.New("player statistic not available")
)

// ProviderScore is the raw score shape returned by a scores provider.
type ProviderScore struct {
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Completed bool
}

// ScoresProvider is the external collaborator boundary for final scores and
// player statistics. Implementations must return ErrGameNotFound /
// ErrStatNotFound rather than inventing data.
type ScoresProvider interface {
	FetchFinalScore(ctx context.Context, league models.League, homeTeam, awayTeam string, approxDate time.Time) (*ProviderScore, error)
	FetchPlayerStat(ctx context.Context, league models.League, player, stat string, approxDate time.Time) (float64, error)
}

// FinalScore is the canonical normalized score for a matchup. Completed=false
// means the game exists but has not finished: retry later, not an error.
type FinalScore struct {
	HomeScore int
	AwayScore int
	Completed bool
}

// Normalizer wraps a ScoresProvider, matching provider team names against the
// pick's matchup and reorienting scores when the provider lists the teams the
// other way around. Every provider call is bounded by Timeout.
type Normalizer struct {
	Provider ScoresProvider
	Timeout  time.Duration
}

func NewNormalizer(provider ScoresProvider, timeout time.Duration) *Normalizer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Normalizer{Provider: provider, Timeout: timeout}
}

// FinalScoreFor looks up the normalized final score for a pick's matchup.
func (n *Normalizer) FinalScoreFor(ctx context.Context, league models.League, homeTeam, awayTeam string, approxDate time.Time) (*FinalScore, error) {
	ctx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()

	raw, err := n.Provider.FetchFinalScore(ctx, league, homeTeam, awayTeam, approxDate)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrGameNotFound
	}

	// Absorb name variants: "LA Lakers" from the provider must match a pick
	// recorded against "Los Angeles Lakers", in either orientation.
	if common.TeamMatches(raw.HomeTeam, homeTeam) && common.TeamMatches(raw.AwayTeam, awayTeam) {
		return &FinalScore{HomeScore: raw.HomeScore, AwayScore: raw.AwayScore, Completed: raw.Completed}, nil
	}
	if common.TeamMatches(raw.HomeTeam, awayTeam) && common.TeamMatches(raw.AwayTeam, homeTeam) {
		return &FinalScore{HomeScore: raw.AwayScore, AwayScore: raw.HomeScore, Completed: raw.Completed}, nil
	}

	return nil, fmt.Errorf("%w: provider returned %q vs %q for %q vs %q",
		ErrGameNotFound, raw.HomeTeam, raw.AwayTeam, homeTeam, awayTeam)
}

// PlayerStatFor looks up an actual player statistic for prop grading.
func (n *Normalizer) PlayerStatFor(ctx context.Context, league models.League, player, stat string, approxDate time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()

	return n.Provider.FetchPlayerStat(ctx, league, player, stat, approxDate)
}
