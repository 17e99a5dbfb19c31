package bridge

import (
	"errors"
	"testing"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/PancyStudios/ToothlessGo/pkg/mqtt"
	"github.com/PancyStudios/ToothlessGo/pkg/mqtt/mqtttest"
	"github.com/goccy/go-json"
)

func newTestBridge(t *testing.T) (*Bridge, *mqtt.MqttCommunicator, *database.Repositories) {
	t.Helper()
	repos := database.NewRepositories(database.NewStore(database.NewFileBackend(t.TempDir())))
	mc := mqtt.NewWithClient(mqtttest.NewClient(), "bot", "")
	b := New(mc, repos)
	if err := b.Register(); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	return b, mc, repos
}

// decode re-marshals an MQTT response into v
func decode(t *testing.T, data any, v any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatal(err)
	}
}

func TestGuildGetOverMQTT(t *testing.T) {
	_, mc, _ := newTestBridge(t)

	data, err := mc.Request(TopicGuildGet, map[string]any{"guildId": "g1"}, time.Second)
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}

	var cfg models.GuildConfig
	decode(t, data, &cfg)
	if cfg.Prefix != models.DefaultPrefix {
		t.Errorf("prefix = %q, want %q", cfg.Prefix, models.DefaultPrefix)
	}
	if cfg.Levels.XPMin != models.DefaultXPMin {
		t.Errorf("xpMin = %d, want %d", cfg.Levels.XPMin, models.DefaultXPMin)
	}
}

func TestGuildGetRequiresGuild(t *testing.T) {
	_, mc, _ := newTestBridge(t)

	_, err := mc.Request(TopicGuildGet, map[string]any{}, time.Second)
	if err == nil || err.Error() != ErrMissingGuild.Error() {
		t.Errorf("Request() error = %v, want %v", err, ErrMissingGuild)
	}
}

func TestGuildPatch(t *testing.T) {
	b, _, repos := newTestBridge(t)

	tests := []struct {
		name    string
		payload map[string]any
		wantErr error
	}{
		{"missing guild", map[string]any{"section": "levels", "data": map[string]any{}}, ErrMissingGuild},
		{"missing section", map[string]any{"guildId": "g1", "data": map[string]any{}}, ErrMissingSection},
		{"unknown section", map[string]any{"guildId": "g1", "section": "music", "data": map[string]any{}}, database.ErrUnknownSection},
		{"missing data", map[string]any{"guildId": "g1", "section": "levels"}, ErrMissingData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.GuildPatch(tt.payload); !errors.Is(err, tt.wantErr) {
				t.Errorf("GuildPatch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	out, err := b.GuildPatch(map[string]any{
		"guildId": "g1",
		"section": "welcomer",
		"data":    map[string]any{"enabled": true, "channelId": "c1"},
	})
	if err != nil {
		t.Fatalf("GuildPatch() error: %v", err)
	}

	resp := out.(map[string]any)
	if resp["success"] != true {
		t.Errorf("success = %v", resp["success"])
	}
	welcome, ok := resp["data"].(models.WelcomeSettings)
	if !ok {
		t.Fatalf("data = %T, want WelcomeSettings", resp["data"])
	}
	if !welcome.Enabled || models.StringValue(welcome.ChannelID) != "c1" {
		t.Errorf("welcome = %+v", welcome)
	}
	if welcome.Message != models.DefaultWelcomeMessage {
		t.Errorf("sibling field changed: message = %q", welcome.Message)
	}

	if got := repos.Guilds.Get("g1"); !got.Welcome.Enabled {
		t.Error("patch was not persisted")
	}
}

func TestLeaderboards(t *testing.T) {
	b, _, repos := newTestBridge(t)

	repos.Economy.Set("g1", "rich", models.EconomyAccount{Wallet: 500, Bank: 500})
	repos.Economy.Set("g1", "poor", models.EconomyAccount{Wallet: 10})
	repos.Levels.AddXP("g1", "chatty", 250)

	out, err := b.EconomyLeaderboard(map[string]any{"guildId": "g1", "limit": float64(1)})
	if err != nil {
		t.Fatal(err)
	}
	board := out.(map[string]any)["leaderboard"].([]models.EconomyEntry)
	if len(board) != 1 || board[0].UserID != "rich" || board[0].Total != 1000 {
		t.Errorf("economy leaderboard = %+v", board)
	}

	out, err = b.LevelsLeaderboard(map[string]any{"guildId": "g1"})
	if err != nil {
		t.Fatal(err)
	}
	levels := out.(map[string]any)["leaderboard"].([]models.LevelEntry)
	if len(levels) != 1 || levels[0].UserID != "chatty" {
		t.Errorf("levels leaderboard = %+v", levels)
	}
}

func TestLimitFrom(t *testing.T) {
	tests := []struct {
		name  string
		limit any
		want  int
	}{
		{"absent", nil, defaultLeaderboardSize},
		{"number", float64(5), 5},
		{"string", "7", 7},
		{"garbage", "many", defaultLeaderboardSize},
		{"zero", float64(0), defaultLeaderboardSize},
		{"too large", float64(1000), maxLeaderboardSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := map[string]any{}
			if tt.limit != nil {
				payload["limit"] = tt.limit
			}
			if got := limitFrom(payload); got != tt.want {
				t.Errorf("limitFrom() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChangesArePublished(t *testing.T) {
	b, mc, _ := newTestBridge(t)

	events := make(chan []byte, 4)
	if err := mc.Subscribe(mc.EventTopic("guild/+"), func(topic string, payload []byte) {
		if topic == mc.EventTopic("guild/g1") {
			select {
			case events <- payload:
			default:
			}
		}
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := b.GuildPatch(map[string]any{
		"guildId": "g1",
		"section": "levels",
		"data":    map[string]any{"enabled": true},
	}); err != nil {
		t.Fatal(err)
	}

	select {
	case raw := <-events:
		var ev struct {
			Type     string             `json:"type"`
			GuildID  string             `json:"guildId"`
			Settings models.GuildConfig `json:"settings"`
		}
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatal(err)
		}
		if ev.Type != "guild.updated" || ev.GuildID != "g1" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change event published")
	}
}
