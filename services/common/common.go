package common

import (
	"fmt"
	"strconv"
	"strings"

	"garyPicks/models"

	"github.com/shopspring/decimal"
)

func FormatOdds(odds float64) string {
	response := ""

	if odds == float64(int(odds)) {
		response = strconv.Itoa(int(odds))
	} else {
		response = fmt.Sprintf("%.1f", odds)
	}

	if odds > 0 {
		return fmt.Sprintf("+%s", response)
	}
	return response
}

// ProfitFromOdds returns the profit component of a winning wager at the given
// American odds. The stake itself is not included.
func ProfitFromOdds(amount decimal.Decimal, odds int) decimal.Decimal {
	if odds > 0 {
		return amount.Mul(decimal.NewFromInt(int64(odds))).Div(decimal.NewFromInt(100)).Round(2)
	}
	if odds < 0 {
		return amount.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(-odds))).Round(2)
	}
	return amount
}

// ParlayOddsMultiplier combines American odds into a single decimal
// multiplier (stake included). An empty list yields 1.0.
func ParlayOddsMultiplier(oddsList []int) decimal.Decimal {
	multiplier := decimal.NewFromInt(1)
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)

	for _, odds := range oddsList {
		if odds > 0 {
			multiplier = multiplier.Mul(decimal.NewFromInt(int64(odds)).Div(hundred).Add(one))
		} else if odds < 0 {
			multiplier = multiplier.Mul(hundred.Div(decimal.NewFromInt(int64(-odds))).Add(one))
		}
	}

	return multiplier
}

// ParlayProfit returns the profit component of a winning parlay built from
// the given legs' odds.
func ParlayProfit(amount decimal.Decimal, oddsList []int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	return amount.Mul(ParlayOddsMultiplier(oddsList).Sub(one)).Round(2)
}

// InvertResult flips won and lost; push and pending pass through.
func InvertResult(r models.PickResult) models.PickResult {
	switch r {
	case models.ResultWon:
		return models.ResultLost
	case models.ResultLost:
		return models.ResultWon
	default:
		return r
	}
}

// TeamMatches reports whether two team names refer to the same team, using
// case-insensitive substring containment in both directions so that
// "LA Lakers" and "Los Angeles Lakers" both match "Lakers".
func TeamMatches(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}
