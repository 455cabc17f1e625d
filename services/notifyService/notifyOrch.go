package notifyService

import (
	"fmt"
	"log"
	"strings"

	"garyPicks/models"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
)

// Notifier announces graded picks to a Discord channel. It is optional: a nil
// Notifier is safe to call and does nothing.
type Notifier struct {
	session   *discordgo.Session
	channelID string
}

// New opens a Discord session for result announcements. Both values must be
// set; callers pass the nil Notifier through when the feature is off.
func New(token, channelID string) (*Notifier, error) {
	if token == "" || channelID == "" {
		return nil, fmt.Errorf("discord token and channel id are both required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("opening discord session: %w", err)
	}

	return &Notifier{session: session, channelID: channelID}, nil
}

func (n *Notifier) Close() {
	if n == nil || n.session == nil {
		return
	}
	if err := n.session.Close(); err != nil {
		log.Printf("Error closing discord session: %v", err)
	}
}

func embedStyle(result models.PickResult) (string, int) {
	switch result {
	case models.ResultWon:
		return "Gary Cashed It", 0x57F287
	case models.ResultLost:
		return "Gary Took the L", 0xED4245
	default:
		return "Push - No Action", 0x99AAB5
	}
}

// AnnounceGradedPick posts a resolution embed for a freshly graded pick.
func (n *Notifier) AnnounceGradedPick(pick models.Pick, result models.PickResult, detail string, delta decimal.Decimal) {
	if n == nil || n.session == nil {
		return
	}

	title, color := embedStyle(result)

	var description strings.Builder
	description.WriteString(fmt.Sprintf("**%s @ %s** (%s)\n", pick.AwayTeam, pick.HomeTeam, pick.League))
	description.WriteString(fmt.Sprintf("**Pick:** %s\n", pick.PickText))
	if pick.FinalScore != nil {
		description.WriteString(fmt.Sprintf("**Final:** %s\n", *pick.FinalScore))
	}
	if detail != "" {
		description.WriteString(fmt.Sprintf("**Grade:** %s\n", detail))
	}
	if !delta.IsZero() {
		description.WriteString(fmt.Sprintf("**Bankroll:** %s\n", delta.StringFixed(2)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description.String(),
		Color:       color,
	}

	_, err := n.session.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.Printf("Error sending resolution notification: %v", err)
	}
}
