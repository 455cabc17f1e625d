package pickService

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"garyPicks/models"
)

var (
	ErrAmbiguousTeam  = errors.New("pick text does not identify exactly one team")
	ErrUnparsableLine = errors.New("no numeric line found in pick text")
	ErrUnknownBetType = errors.New("unknown bet type")
)

// BetDescriptor is the structured form of a pick's free text. Kind selects
// which fields are meaningful: Team/PickedHome for moneyline and spread,
// Line for spread/total/prop, Over for total/prop, Player/Stat for props,
// Legs for parlays.
type BetDescriptor struct {
	Kind       models.BetType
	Team       string
	PickedHome bool
	Line       float64
	Over       bool
	Player     string
	Stat       string
	Legs       []BetDescriptor
}

var (
	spreadRe = regexp.MustCompile(`^(.*?)\s*([-+]?\d+(?:\.\d+)?)\s*$`)
	totalRe  = regexp.MustCompile(`(?i)\b(over|under)\b\s*(\d+(?:\.\d+)?)`)
	propRe   = regexp.MustCompile(`(?i)^(.+?)\s+(over|under)\s+(\d+(?:\.\d+)?)\s+(.+?)\s*$`)
)

// Parse extracts a BetDescriptor from a pick's free text. It is pure: errors
// are returned, never panicked, so the sweep can void an unparsable pick with
// a diagnostic instead of crashing.
func Parse(pickText string, betType models.BetType, homeTeam, awayTeam string) (BetDescriptor, error) {
	switch betType {
	case models.BetMoneyline:
		return parseMoneyline(pickText, homeTeam, awayTeam)
	case models.BetSpread:
		return parseSpread(pickText, homeTeam, awayTeam)
	case models.BetTotal:
		return parseTotal(pickText)
	case models.BetPlayerProp:
		return parsePlayerProp(pickText)
	case models.BetParlay:
		// A parlay has no line of its own; its descriptor is the list of
		// leg descriptors, parsed via ParseLegs.
		return BetDescriptor{Kind: models.BetParlay}, nil
	default:
		return BetDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownBetType, betType)
	}
}

// ParseLegs parses every leg of a parlay independently. The first leg that
// fails to parse fails the whole parlay, identifying the leg.
func ParseLegs(legs []models.PickLeg) (BetDescriptor, error) {
	desc := BetDescriptor{Kind: models.BetParlay}
	for _, leg := range legs {
		legDesc, err := Parse(leg.PickText, leg.BetType, leg.HomeTeam, leg.AwayTeam)
		if err != nil {
			return BetDescriptor{}, fmt.Errorf("leg %d (%s): %w", leg.LegOrder, leg.PickText, err)
		}
		desc.Legs = append(desc.Legs, legDesc)
	}
	return desc, nil
}

// mentionsTeam reports whether the pick text names the given team, either by
// containing the full team name or by containing one of its words ("Lakers"
// for "Los Angeles Lakers"). Short connective words are skipped so "Los" or
// "New" alone never match.
func mentionsTeam(text, team string) bool {
	text = strings.ToLower(text)
	team = strings.ToLower(strings.TrimSpace(team))
	if team == "" {
		return false
	}
	if strings.Contains(text, team) {
		return true
	}
	for _, word := range strings.Fields(team) {
		if len(word) < 4 {
			continue
		}
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func parseMoneyline(pickText, homeTeam, awayTeam string) (BetDescriptor, error) {
	homeMatch := mentionsTeam(pickText, homeTeam)
	awayMatch := mentionsTeam(pickText, awayTeam)

	if homeMatch == awayMatch {
		return BetDescriptor{}, fmt.Errorf("%w: %q vs %q / %q", ErrAmbiguousTeam, pickText, homeTeam, awayTeam)
	}

	desc := BetDescriptor{Kind: models.BetMoneyline}
	if homeMatch {
		desc.Team = homeTeam
		desc.PickedHome = true
	} else {
		desc.Team = awayTeam
	}
	return desc, nil
}

func parseSpread(pickText, homeTeam, awayTeam string) (BetDescriptor, error) {
	m := spreadRe.FindStringSubmatch(strings.TrimSpace(pickText))
	if m == nil {
		return BetDescriptor{}, fmt.Errorf("%w: %q", ErrUnparsableLine, pickText)
	}

	line, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return BetDescriptor{}, fmt.Errorf("%w: %q", ErrUnparsableLine, pickText)
	}

	teamToken := m[1]
	homeMatch := mentionsTeam(teamToken, homeTeam)
	awayMatch := mentionsTeam(teamToken, awayTeam)
	if homeMatch == awayMatch {
		return BetDescriptor{}, fmt.Errorf("%w: %q vs %q / %q", ErrAmbiguousTeam, teamToken, homeTeam, awayTeam)
	}

	desc := BetDescriptor{Kind: models.BetSpread, Line: line}
	if homeMatch {
		desc.Team = homeTeam
		desc.PickedHome = true
	} else {
		desc.Team = awayTeam
	}
	return desc, nil
}

func parseTotal(pickText string) (BetDescriptor, error) {
	m := totalRe.FindStringSubmatch(pickText)
	if m == nil {
		return BetDescriptor{}, fmt.Errorf("%w: %q", ErrUnparsableLine, pickText)
	}

	threshold, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return BetDescriptor{}, fmt.Errorf("%w: %q", ErrUnparsableLine, pickText)
	}

	return BetDescriptor{
		Kind: models.BetTotal,
		Over: strings.EqualFold(m[1], "over"),
		Line: threshold,
	}, nil
}

func parsePlayerProp(pickText string) (BetDescriptor, error) {
	m := propRe.FindStringSubmatch(strings.TrimSpace(pickText))
	if m == nil {
		return BetDescriptor{}, fmt.Errorf("%w: %q", ErrUnparsableLine, pickText)
	}

	line, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return BetDescriptor{}, fmt.Errorf("%w: %q", ErrUnparsableLine, pickText)
	}

	return BetDescriptor{
		Kind:   models.BetPlayerProp,
		Player: strings.TrimSpace(m[1]),
		Over:   strings.EqualFold(m[2], "over"),
		Line:   line,
		Stat:   strings.TrimSpace(m[4]),
	}, nil
}
