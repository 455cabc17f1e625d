package pickService

import (
	"errors"
	"testing"

	"garyPicks/models"
)

func TestParseMoneyline(t *testing.T) {
	tests := []struct {
		name       string
		pickText   string
		home       string
		away       string
		wantTeam   string
		wantHome   bool
		wantErr    error
		scenario   string
	}{
		{
			name:     "Home team by full name",
			pickText: "Los Angeles Lakers ML",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantTeam: "Los Angeles Lakers",
			wantHome: true,
			scenario: "Pick text contains the full home team name",
		},
		{
			name:     "Away team by short name",
			pickText: "Celtics ML",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantTeam: "Boston Celtics",
			wantHome: false,
			scenario: "Short name is contained within the away team name",
		},
		{
			name:     "Neither team matches",
			pickText: "Miami Heat ML",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantErr:  ErrAmbiguousTeam,
			scenario: "Pick text names a team not in the matchup",
		},
		{
			name:     "Both teams match",
			pickText: "Lakers vs Celtics",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantErr:  ErrAmbiguousTeam,
			scenario: "Pick text mentions both sides of the matchup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Parse(tt.pickText, models.BetMoneyline, tt.home, tt.away)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("%s: expected error %v, got %v", tt.scenario, tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tt.scenario, err)
			}
			if desc.Kind != models.BetMoneyline {
				t.Errorf("expected moneyline kind, got %q", desc.Kind)
			}
			if desc.Team != tt.wantTeam {
				t.Errorf("%s: expected team %q, got %q", tt.scenario, tt.wantTeam, desc.Team)
			}
			if desc.PickedHome != tt.wantHome {
				t.Errorf("%s: expected PickedHome=%v, got %v", tt.scenario, tt.wantHome, desc.PickedHome)
			}
		})
	}
}

func TestParseSpread(t *testing.T) {
	tests := []struct {
		name     string
		pickText string
		home     string
		away     string
		wantTeam string
		wantLine float64
		wantErr  error
		scenario string
	}{
		{
			name:     "Home favorite",
			pickText: "Lakers -4.5",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantTeam: "Los Angeles Lakers",
			wantLine: -4.5,
			scenario: "Negative spread against the home team",
		},
		{
			name:     "Away underdog",
			pickText: "Celtics +7",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantTeam: "Boston Celtics",
			wantLine: 7,
			scenario: "Positive integer spread against the away team",
		},
		{
			name:     "Unsigned underdog line",
			pickText: "Celtics 7.5",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantTeam: "Boston Celtics",
			wantLine: 7.5,
			scenario: "A bare number with no sign reads as a positive line",
		},
		{
			name:     "No numeric spread",
			pickText: "Lakers cover",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantErr:  ErrUnparsableLine,
			scenario: "Pick text has no trailing number",
		},
		{
			name:     "Unknown team with spread",
			pickText: "Heat -2.5",
			home:     "Los Angeles Lakers",
			away:     "Boston Celtics",
			wantErr:  ErrAmbiguousTeam,
			scenario: "Valid line but the team is not in the matchup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Parse(tt.pickText, models.BetSpread, tt.home, tt.away)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("%s: expected error %v, got %v", tt.scenario, tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tt.scenario, err)
			}
			if desc.Team != tt.wantTeam {
				t.Errorf("%s: expected team %q, got %q", tt.scenario, tt.wantTeam, desc.Team)
			}
			if desc.Line != tt.wantLine {
				t.Errorf("%s: expected line %v, got %v", tt.scenario, tt.wantLine, desc.Line)
			}
		})
	}
}

func TestParseTotal(t *testing.T) {
	tests := []struct {
		name      string
		pickText  string
		wantOver  bool
		wantLine  float64
		wantErr   error
		scenario  string
	}{
		{
			name:     "Over with half point",
			pickText: "Over 210.5",
			wantOver: true,
			wantLine: 210.5,
			scenario: "Standard over with decimal threshold",
		},
		{
			name:     "Under lowercase",
			pickText: "under 8.5 runs",
			wantOver: false,
			wantLine: 8.5,
			scenario: "Case-insensitive under with trailing text",
		},
		{
			name:     "Whole number total",
			pickText: "Over 210",
			wantOver: true,
			wantLine: 210,
			scenario: "Integer threshold that can push",
		},
		{
			name:     "Missing keyword",
			pickText: "210.5 combined",
			wantErr:  ErrUnparsableLine,
			scenario: "No over/under keyword present",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Parse(tt.pickText, models.BetTotal, "Home", "Away")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("%s: expected error %v, got %v", tt.scenario, tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tt.scenario, err)
			}
			if desc.Over != tt.wantOver {
				t.Errorf("%s: expected Over=%v, got %v", tt.scenario, tt.wantOver, desc.Over)
			}
			if desc.Line != tt.wantLine {
				t.Errorf("%s: expected line %v, got %v", tt.scenario, tt.wantLine, desc.Line)
			}
		})
	}
}

func TestParsePlayerProp(t *testing.T) {
	desc, err := Parse("LeBron James Over 25.5 points", models.BetPlayerProp, "Los Angeles Lakers", "Boston Celtics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Player != "LeBron James" {
		t.Errorf("expected player %q, got %q", "LeBron James", desc.Player)
	}
	if !desc.Over {
		t.Error("expected an over prop")
	}
	if desc.Line != 25.5 {
		t.Errorf("expected line 25.5, got %v", desc.Line)
	}
	if desc.Stat != "points" {
		t.Errorf("expected stat %q, got %q", "points", desc.Stat)
	}

	_, err = Parse("LeBron James points", models.BetPlayerProp, "Los Angeles Lakers", "Boston Celtics")
	if !errors.Is(err, ErrUnparsableLine) {
		t.Errorf("expected ErrUnparsableLine for prop without a line, got %v", err)
	}
}

func TestParseLegs(t *testing.T) {
	legs := []models.PickLeg{
		{LegOrder: 1, League: models.LeagueNBA, HomeTeam: "Los Angeles Lakers", AwayTeam: "Boston Celtics", BetType: models.BetSpread, PickText: "Lakers -4.5", Odds: -110},
		{LegOrder: 2, League: models.LeagueMLB, HomeTeam: "New York Yankees", AwayTeam: "Houston Astros", BetType: models.BetTotal, PickText: "Under 8.5", Odds: -105},
	}

	desc, err := ParseLegs(legs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(desc.Legs) != 2 {
		t.Fatalf("expected 2 leg descriptors, got %d", len(desc.Legs))
	}
	if desc.Legs[0].Kind != models.BetSpread || desc.Legs[1].Kind != models.BetTotal {
		t.Errorf("leg kinds wrong: %q, %q", desc.Legs[0].Kind, desc.Legs[1].Kind)
	}

	legs[1].PickText = "no line here"
	if _, err := ParseLegs(legs); !errors.Is(err, ErrUnparsableLine) {
		t.Errorf("expected leg parse failure to surface, got %v", err)
	}
}
