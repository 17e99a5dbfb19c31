package events

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func strPtr(s string) *string { return &s }

func fixed(v int) Rand {
	return func(n int) int { return min(v, n-1) }
}

func newTestRepos(t *testing.T) *database.Repositories {
	t.Helper()
	return database.NewRepositories(database.NewStore(database.NewFileBackend(t.TempDir())))
}

func TestRenderWelcome(t *testing.T) {
	vars := WelcomeVars{UserID: "42", Username: "hiccup", Server: "Berk", MemberCount: 7}

	tests := []struct {
		template string
		want     string
	}{
		{models.DefaultWelcomeMessage, "Benvenuto <@42>!"},
		{"{username} se unió a {server}, somos {memberCount}", "hiccup se unió a Berk, somos 7"},
		{"{user} {user}", "<@42> <@42>"},
		{"sin variables {desconocida}", "sin variables {desconocida}"},
	}
	for _, tt := range tests {
		if got := RenderWelcome(tt.template, vars); got != tt.want {
			t.Errorf("RenderWelcome(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestJoinRoles(t *testing.T) {
	cfg := models.DefaultGuildConfig()
	cfg.AutoRoles = []string{"a", "w", "b"}
	cfg.Welcome.RoleID = strPtr("w")

	if got := JoinRoles(cfg); !reflect.DeepEqual(got, []string{"a", "w", "b"}) {
		t.Errorf("welcomer disabled: JoinRoles() = %v", got)
	}

	cfg.Welcome.Enabled = true
	if got := JoinRoles(cfg); !reflect.DeepEqual(got, []string{"w", "a", "b"}) {
		t.Errorf("welcomer enabled: JoinRoles() = %v", got)
	}

	if got := JoinRoles(models.DefaultGuildConfig()); len(got) != 0 {
		t.Errorf("defaults: JoinRoles() = %v", got)
	}
}

func TestIsFreshJoin(t *testing.T) {
	now := time.Now()
	if !IsFreshJoin(now.Add(-3*time.Second), now) {
		t.Error("a 3s old join is fresh")
	}
	if IsFreshJoin(now.Add(-time.Hour), now) {
		t.Error("an hour old join is a reconnect")
	}
	if IsFreshJoin(time.Time{}, now) {
		t.Error("zero JoinedAt is not fresh")
	}
}

func TestXPTrackerCooldown(t *testing.T) {
	tracker := NewXPTracker(10, XPCooldown)
	start := time.Now()

	if !tracker.Allow("g/u", start) {
		t.Fatal("first message should earn XP")
	}
	if tracker.Allow("g/u", start.Add(59*time.Second)) {
		t.Error("message within the cooldown should not earn XP")
	}
	if !tracker.Allow("g/other", start) {
		t.Error("cooldowns are per member")
	}
	if !tracker.Allow("g/u", start.Add(60*time.Second)) {
		t.Error("message after the cooldown should earn XP")
	}
}

func TestXPTrackerConcurrent(t *testing.T) {
	tracker := NewXPTracker(10, XPCooldown)
	now := time.Now()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.Allow("g/u", now) {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 1 {
		t.Errorf("%d concurrent grants, want 1", allowed)
	}
}

func TestRollXP(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		rnd      Rand
		want     int64
	}{
		{"low end", 15, 25, fixed(0), 15},
		{"high end", 15, 25, fixed(1 << 20), 25},
		{"single value", 10, 10, fixed(5), 10},
		{"inverted range", 30, 10, fixed(5), 30},
		{"zero min", 0, 0, fixed(0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollXP(models.LevelSettings{XPMin: tt.min, XPMax: tt.max}, tt.rnd)
			if got != tt.want {
				t.Errorf("RollXP() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGrantMessageXP(t *testing.T) {
	repos := newTestRepos(t)
	tracker := NewXPTracker(10, XPCooldown)
	now := time.Now()

	if g := GrantMessageXP(repos, tracker, "g1", "u1", now, fixed(0)); g.Granted {
		t.Fatal("levels are disabled by default")
	}

	enabled := true
	if _, err := repos.Guilds.Patch("g1", models.SectionLevels, map[string]any{"enabled": enabled, "xpMin": 60, "xpMax": 60}); err != nil {
		t.Fatal(err)
	}

	first := GrantMessageXP(repos, tracker, "g1", "u1", now, fixed(0))
	if !first.Granted || first.Amount != 60 || first.LeveledUp {
		t.Fatalf("first grant = %+v", first)
	}

	if g := GrantMessageXP(repos, tracker, "g1", "u1", now.Add(time.Second), fixed(0)); g.Granted {
		t.Error("second message within 60s should not earn XP")
	}

	second := GrantMessageXP(repos, tracker, "g1", "u1", now.Add(XPCooldown), fixed(0))
	if !second.Granted || !second.LeveledUp {
		t.Fatalf("120 XP should reach level 1: %+v", second)
	}
	if second.Progress.Level != 1 || second.Progress.XP != 20 || second.Progress.TotalXP != 120 {
		t.Errorf("progress = %+v", second.Progress)
	}
}

func TestMentionsUser(t *testing.T) {
	bot := &discordgo.User{ID: "bot"}
	msg := &discordgo.Message{Mentions: []*discordgo.User{{ID: "x"}, {ID: "bot"}}}

	if !mentionsUser(msg, bot) {
		t.Error("bot mention not detected")
	}
	if mentionsUser(&discordgo.Message{}, bot) {
		t.Error("no mentions reported as mention")
	}
	if mentionsUser(msg, nil) {
		t.Error("nil user should never match")
	}
}

func TestRegisterAll(t *testing.T) {
	session, err := discordgo.New("Bot test")
	if err != nil {
		t.Fatal(err)
	}
	client := &discord.ExtendedClient{Session: session, Commands: discord.NewCommandCollection()}
	client.EventHandler = discord.NewEventHandler(client)

	RegisterAll(client)

	if got := client.EventHandler.Count(); got != 6 {
		t.Errorf("registered %d handlers, want 6", got)
	}
}
