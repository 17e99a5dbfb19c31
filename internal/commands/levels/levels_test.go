package levels

import (
	"strings"
	"testing"

	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name        string
		xp, needed  int64
		wantFilled  int
		wantPercent string
	}{
		{"empty", 0, 100, 0, " 0%"},
		{"half", 50, 100, 5, " 50%"},
		{"almost", 199, 200, 9, " 99%"},
		{"overflow", 500, 100, 10, " 100%"},
		{"zero needed", 0, 0, 0, " 0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressBar(tt.xp, tt.needed)
			if n := strings.Count(got, "🟩"); n != tt.wantFilled {
				t.Errorf("filled = %d, want %d (%q)", n, tt.wantFilled, got)
			}
			if n := strings.Count(got, "🟩") + strings.Count(got, "⬛"); n != barWidth {
				t.Errorf("width = %d, want %d", n, barWidth)
			}
			if !strings.HasSuffix(got, tt.wantPercent) {
				t.Errorf("ProgressBar() = %q, want suffix %q", got, tt.wantPercent)
			}
		})
	}
}

func TestMedal(t *testing.T) {
	want := []string{"🥇", "🥈", "🥉", "#4"}
	for i, w := range want {
		if got := Medal(i + 1); got != w {
			t.Errorf("Medal(%d) = %q, want %q", i+1, got, w)
		}
	}
}

func TestLeaderboardLines(t *testing.T) {
	eco := EconomyLines([]models.EconomyEntry{
		{UserID: "a", Total: 1500},
		{UserID: "b", Total: 20},
	}, "💎")
	if want := "🥇 <@a> `1.500` 💎\n🥈 <@b> `20` 💎"; eco != want {
		t.Errorf("EconomyLines() = %q, want %q", eco, want)
	}

	lvl := LevelLines([]models.LevelEntry{{UserID: "a", Level: 3, TotalXP: 650}})
	if want := "🥇 <@a> Nivel **3** (650 XP)"; lvl != want {
		t.Errorf("LevelLines() = %q, want %q", lvl, want)
	}

	if EconomyLines(nil, "") == "" || LevelLines(nil) == "" {
		t.Error("empty leaderboards should render a placeholder")
	}
}
