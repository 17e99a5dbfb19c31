package mod

import (
	"strings"
	"testing"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func TestParseWarnID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1700000000000", 1700000000000, false},
		{" 42 ", 42, false},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseWarnID(tt.raw)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseWarnID(%q) = %d, %v", tt.raw, got, err)
		}
	}
}

func TestWarnChoices(t *testing.T) {
	warnings := make([]models.Warning, 30)
	for i := range warnings {
		warnings[i] = models.Warning{ID: int64(i + 1), Reason: "spam"}
	}
	warnings[29].Reason = strings.Repeat("á", 200)

	choices := WarnChoices(warnings)
	if len(choices) != 25 {
		t.Fatalf("len = %d, want 25", len(choices))
	}
	if choices[0].Value != "30" {
		t.Errorf("first choice = %v, want newest warning", choices[0].Value)
	}
	if n := len([]rune(choices[0].Name)); n != maxChoiceName {
		t.Errorf("long name has %d runes, want %d", n, maxChoiceName)
	}
	if choices[1].Name != "ID: 29 - Razón: spam" {
		t.Errorf("choice name = %q", choices[1].Name)
	}

	if got := WarnChoices(nil); len(got) != 0 {
		t.Errorf("WarnChoices(nil) = %v", got)
	}
}

func TestWarnLines(t *testing.T) {
	warnings := []models.Warning{
		{ID: 7, Reason: "flood", Moderator: "m1", Timestamp: "2024-01-01T00:00:00Z"},
		{ID: 8, Reason: "spam", Moderator: "m2", Timestamp: "bad"},
	}

	hidden := WarnLines(warnings, false)
	if strings.Contains(hidden, "<@m1>") || !strings.Contains(hidden, "Oculto") {
		t.Errorf("moderators should be hidden: %q", hidden)
	}
	shown := WarnLines(warnings, true)
	if !strings.Contains(shown, "<@m1>") || !strings.Contains(shown, "<@m2>") {
		t.Errorf("moderators should be shown: %q", shown)
	}
	if !strings.Contains(shown, "<t:1704067200:R>") {
		t.Errorf("timestamp not rendered: %q", shown)
	}
	if !strings.Contains(shown, "**Fecha:** bad") {
		t.Errorf("unparseable timestamp should be kept: %q", shown)
	}
	if strings.HasSuffix(shown, "\n") {
		t.Error("trailing newline left")
	}
}

func TestCanModerate(t *testing.T) {
	tests := []struct {
		name   string
		member *discordgo.Member
		want   bool
	}{
		{"nil", nil, false},
		{"none", &discordgo.Member{}, false},
		{"moderator", &discordgo.Member{Permissions: discordgo.PermissionModerateMembers}, true},
		{"admin", &discordgo.Member{Permissions: discordgo.PermissionAdministrator}, true},
	}
	for _, tt := range tests {
		if got := canModerate(tt.member); got != tt.want {
			t.Errorf("%s: canModerate() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTimeoutUntil(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := TimeoutUntil(now, 10); !got.Equal(now.Add(10 * time.Minute)) {
		t.Errorf("TimeoutUntil(10) = %v", got)
	}
	if got := TimeoutUntil(now, 1_000_000); !got.Equal(now.Add(maxTimeout)) {
		t.Errorf("TimeoutUntil should cap at 28 days, got %v", got)
	}
}

func TestLogEmbed(t *testing.T) {
	embed := LogEmbed("Ban", "u1", "m1", "")
	if len(embed.Fields) != 3 || embed.Fields[2].Value != defaultReason {
		t.Errorf("LogEmbed() fields = %+v", embed.Fields)
	}
}
