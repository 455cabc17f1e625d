package extService

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"garyPicks/models"
	"garyPicks/services/common"
	"garyPicks/services/scoreService"
)

// sportKeys maps leagues to The Odds API sport keys.
var sportKeys = map[models.League]string{
	models.LeagueNBA:    "basketball_nba",
	models.LeagueMLB:    "baseball_mlb",
	models.LeagueNHL:    "icehockey_nhl",
	models.LeagueNFL:    "americanfootball_nfl",
	models.LeagueSoccer: "soccer_epl",
}

// OddsAPIScore is the scores payload shape from The Odds API.
type OddsAPIScore struct {
	ID        string `json:"id"`
	SportKey  string `json:"sport_key"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Completed bool   `json:"completed"`
	Scores    []struct {
		Name  string `json:"name"`
		Score string `json:"score"`
	} `json:"scores"`
}

// OddsAPIClient implements scoreService.ScoresProvider against The Odds API
// scores endpoint. StatsURL, when set, points at a stats endpoint used for
// player-prop actuals; without it props stay pending.
type OddsAPIClient struct {
	APIKey   string
	BaseURL  string
	StatsURL string
	client   *http.Client
}

func NewOddsAPIClient(apiKey, statsURL string) *OddsAPIClient {
	return &OddsAPIClient{
		APIKey:   apiKey,
		BaseURL:  "https://api.the-odds-api.com/v4",
		StatsURL: statsURL,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *OddsAPIClient) FetchFinalScore(ctx context.Context, league models.League, homeTeam, awayTeam string, approxDate time.Time) (*scoreService.ProviderScore, error) {
	sportKey, ok := sportKeys[league]
	if !ok {
		return nil, fmt.Errorf("no sport key for league %q", league)
	}

	daysFrom := int(time.Since(approxDate).Hours()/24) + 1
	if daysFrom < 1 {
		daysFrom = 1
	}
	if daysFrom > 3 {
		daysFrom = 3
	}

	requestUrl := fmt.Sprintf("%s/sports/%s/scores/?apiKey=%s&daysFrom=%d",
		c.BaseURL, sportKey, c.APIKey, daysFrom)

	req, err := http.NewRequestWithContext(ctx, "GET", requestUrl, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds api returned %d", resp.StatusCode)
	}

	var games []OddsAPIScore
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, err
	}

	for _, game := range games {
		if !matchesEitherWay(game.HomeTeam, game.AwayTeam, homeTeam, awayTeam) {
			continue
		}

		score := &scoreService.ProviderScore{
			HomeTeam:  game.HomeTeam,
			AwayTeam:  game.AwayTeam,
			Completed: game.Completed,
		}
		for _, entry := range game.Scores {
			value, convErr := strconv.Atoi(entry.Score)
			if convErr != nil {
				continue
			}
			if common.TeamMatches(entry.Name, game.HomeTeam) {
				score.HomeScore = value
			} else if common.TeamMatches(entry.Name, game.AwayTeam) {
				score.AwayScore = value
			}
		}
		return score, nil
	}

	return nil, scoreService.ErrGameNotFound
}

func (c *OddsAPIClient) FetchPlayerStat(ctx context.Context, league models.League, player, stat string, approxDate time.Time) (float64, error) {
	if c.StatsURL == "" {
		return 0, scoreService.ErrStatNotFound
	}

	requestUrl := fmt.Sprintf("%s?league=%s&player=%s&stat=%s&date=%s",
		c.StatsURL,
		url.QueryEscape(string(league)),
		url.QueryEscape(player),
		url.QueryEscape(stat),
		approxDate.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, "GET", requestUrl, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, scoreService.ErrStatNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("stats api returned %d", resp.StatusCode)
	}

	var payload struct {
		Value *float64 `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}
	if payload.Value == nil {
		return 0, scoreService.ErrStatNotFound
	}

	return *payload.Value, nil
}

func matchesEitherWay(providerHome, providerAway, home, away string) bool {
	straight := common.TeamMatches(providerHome, home) && common.TeamMatches(providerAway, away)
	flipped := common.TeamMatches(providerHome, away) && common.TeamMatches(providerAway, home)
	return straight || flipped
}
