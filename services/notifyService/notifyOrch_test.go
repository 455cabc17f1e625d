package notifyService

import (
	"testing"

	"garyPicks/models"

	"github.com/shopspring/decimal"
)

func TestEmbedStyle(t *testing.T) {
	tests := []struct {
		name      string
		result    models.PickResult
		wantTitle string
		wantColor int
	}{
		{"Won", models.ResultWon, "Gary Cashed It", 0x57F287},
		{"Lost", models.ResultLost, "Gary Took the L", 0xED4245},
		{"Push", models.ResultPush, "Push - No Action", 0x99AAB5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, color := embedStyle(tt.result)
			if title != tt.wantTitle {
				t.Errorf("expected title %q, got %q", tt.wantTitle, title)
			}
			if color != tt.wantColor {
				t.Errorf("expected color %#x, got %#x", tt.wantColor, color)
			}
		})
	}
}

func TestAnnounceGradedPickNilNotifier(t *testing.T) {
	var n *Notifier
	// Must not panic: callers pass a nil Notifier through when Discord is off.
	n.AnnounceGradedPick(models.Pick{}, models.ResultWon, "detail", decimal.NewFromInt(1))
	n.Close()
}
