package common

import (
	"testing"

	"garyPicks/models"

	"github.com/shopspring/decimal"
)

func TestProfitFromOdds(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		odds     int
		expected string
		scenario string
	}{
		{"Plus odds", "100", 150, "150", "+150 pays 1.5x the stake in profit"},
		{"Minus odds", "100", -110, "90.91", "-110 pays 100/110 of the stake"},
		{"Even money", "50", 100, "50", "+100 doubles the stake"},
		{"Heavy favorite", "100", -200, "50", "-200 pays half the stake"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			expected := decimal.RequireFromString(tt.expected)
			got := ProfitFromOdds(amount, tt.odds)
			if !got.Equal(expected) {
				t.Errorf("%s: expected %s, got %s", tt.scenario, expected, got)
			}
		})
	}
}

func TestParlayOddsMultiplier(t *testing.T) {
	multiplier := ParlayOddsMultiplier([]int{100, 100})
	if !multiplier.Equal(decimal.NewFromInt(4)) {
		t.Errorf("two even-money legs should multiply to 4, got %s", multiplier)
	}

	empty := ParlayOddsMultiplier(nil)
	if !empty.Equal(decimal.NewFromInt(1)) {
		t.Errorf("empty odds list should yield 1, got %s", empty)
	}
}

func TestParlayProfit(t *testing.T) {
	profit := ParlayProfit(decimal.NewFromInt(100), []int{100, 100})
	if !profit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("100 at 4x should profit 300, got %s", profit)
	}
}

func TestInvertResult(t *testing.T) {
	if InvertResult(models.ResultWon) != models.ResultLost {
		t.Error("won should invert to lost")
	}
	if InvertResult(models.ResultLost) != models.ResultWon {
		t.Error("lost should invert to won")
	}
	if InvertResult(models.ResultPush) != models.ResultPush {
		t.Error("push should pass through")
	}
	if InvertResult(InvertResult(models.ResultWon)) != models.ResultWon {
		t.Error("double inversion should be the identity")
	}
}

func TestTeamMatches(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{"Identical", "Los Angeles Lakers", "Los Angeles Lakers", true},
		{"Substring forward", "Lakers", "Los Angeles Lakers", true},
		{"Substring backward", "Los Angeles Lakers", "Lakers", true},
		{"Case insensitive", "BOSTON CELTICS", "boston celtics", true},
		{"No relation", "Miami Heat", "Denver Nuggets", false},
		{"Empty side", "", "Lakers", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TeamMatches(tt.a, tt.b); got != tt.expected {
				t.Errorf("TeamMatches(%q, %q) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestFormatOdds(t *testing.T) {
	if got := FormatOdds(-4.5); got != "-4.5" {
		t.Errorf("expected -4.5, got %s", got)
	}
	if got := FormatOdds(7); got != "+7" {
		t.Errorf("expected +7, got %s", got)
	}
	if got := FormatOdds(-3); got != "-3" {
		t.Errorf("expected -3, got %s", got)
	}
}
