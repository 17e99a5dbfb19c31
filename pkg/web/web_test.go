package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type fakeBot struct {
	ready bool
}

func (b *fakeBot) IsReady() bool { return b.ready }

func (b *fakeBot) BotInfo() models.BotInfo {
	return models.BotInfo{ID: "42", Username: "Toothless", Guilds: 3, Ready: b.ready}
}

func (b *fakeBot) GuildInfo(guildID string) (models.GuildInfo, bool) {
	if guildID != "g1" {
		return models.GuildInfo{}, false
	}
	return models.GuildInfo{
		ID:          "g1",
		Name:        "Berk",
		MemberCount: 150,
		Channels:    []models.GuildChannel{{ID: "c1", Name: "generale"}},
	}, true
}

type testEnv struct {
	server *Server
	repos  *database.Repositories
	auth   *Authenticator
	bot    *fakeBot
}

func newTestEnv(t *testing.T, secret string) *testEnv {
	t.Helper()
	repos := database.NewRepositories(database.NewStore(database.NewFileBackend(t.TempDir())))
	auth := NewAuthenticator(secret)
	bot := &fakeBot{ready: true}

	s := NewServer(Options{RequestsPerMinute: 6000, Burst: 1000})
	SetupAPIRoutes(s, &API{
		Repos: repos,
		Bot:   bot,
		Auth:  auth,
		Live:  NewLiveHub(repos, "*"),
	})
	return &testEnv{server: s, repos: repos, auth: auth, bot: bot}
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
}

func TestHealthAndStatus(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodGet, "/api/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("response should carry a request id")
	}

	w = env.do(t, http.MethodGet, "/api/status", "", "")
	var status struct {
		Database struct {
			Backend  string `json:"backend"`
			IsOnline bool   `json:"isOnline"`
		} `json:"database"`
		Bot struct {
			IsOnline bool `json:"isOnline"`
		} `json:"bot"`
	}
	decode(t, w, &status)
	if !status.Database.IsOnline || !strings.HasPrefix(status.Database.Backend, "file:") {
		t.Errorf("database status = %+v", status.Database)
	}
	if !status.Bot.IsOnline {
		t.Error("bot should be online")
	}
}

func TestBotInfo(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodGet, "/api/bot", "", "")
	var info models.BotInfo
	decode(t, w, &info)
	if w.Code != http.StatusOK || info.Username != "Toothless" {
		t.Errorf("bot info = %d %+v", w.Code, info)
	}

	env.bot.ready = false
	if w := env.do(t, http.MethodGet, "/api/bot", "", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("offline bot status = %d, want 503", w.Code)
	}
}

func TestGetGuild(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodGet, "/api/guild/g1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		ID       string             `json:"id"`
		Name     string             `json:"name"`
		Settings models.GuildConfig `json:"settings"`
	}
	decode(t, w, &resp)
	if resp.ID != "g1" || resp.Name != "Berk" {
		t.Errorf("guild = %+v", resp)
	}
	if resp.Settings.Prefix != models.DefaultPrefix || resp.Settings.Levels.XPMin != models.DefaultXPMin {
		t.Errorf("settings = %+v, want defaults", resp.Settings)
	}
	if !env.repos.Guilds.Exists("g1") {
		t.Error("reading a guild should persist its default config")
	}
}

func TestPatchSection(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"welcomer", "/api/guild/g1/welcomer", `{"enabled":true,"channelId":"c1"}`, http.StatusOK},
		{"log", "/api/guild/g1/log", `{"enabled":true}`, http.StatusOK},
		{"tickets", "/api/guild/g1/tickets", `{"supportRoleId":"r1"}`, http.StatusOK},
		{"levels", "/api/guild/g1/levels", `{"xpMin":5,"xpMax":10}`, http.StatusOK},
		{"unknown section", "/api/guild/g1/music", `{"enabled":true}`, http.StatusNotFound},
		{"not an object", "/api/guild/g1/log", `[1,2]`, http.StatusBadRequest},
		{"wrong type", "/api/guild/g1/levels", `{"xpMin":"many"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, tt.path, tt.body, "")
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}

	cfg := env.repos.Guilds.Get("g1")
	if !cfg.Welcome.Enabled || models.StringValue(cfg.Welcome.ChannelID) != "c1" {
		t.Errorf("welcome = %+v", cfg.Welcome)
	}
	if cfg.Welcome.Message != models.DefaultWelcomeMessage {
		t.Errorf("welcome message lost: %q", cfg.Welcome.Message)
	}
	if cfg.Levels.XPMin != 5 || cfg.Levels.XPMax != 10 {
		t.Errorf("levels = %+v", cfg.Levels)
	}
	if models.StringValue(cfg.Tickets.SupportRoleID) != "r1" || cfg.Tickets.Enabled {
		t.Errorf("tickets = %+v", cfg.Tickets)
	}
}

func TestPatchResponseShape(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodPost, "/api/guild/g1/log", `{"enabled":true,"channelId":"c9"}`, "")
	var resp struct {
		Success bool               `json:"success"`
		Data    models.LogSettings `json:"data"`
	}
	decode(t, w, &resp)
	if !resp.Success || !resp.Data.Enabled || models.StringValue(resp.Data.ChannelID) != "c9" {
		t.Errorf("response = %+v", resp)
	}
}

func TestLeaderboards(t *testing.T) {
	env := newTestEnv(t, "")
	for i, id := range []string{"a", "b", "c"} {
		env.repos.Economy.Set("g1", id, models.EconomyAccount{Wallet: int64(i * 100)})
		env.repos.Levels.Set("g1", id, models.LevelProgress{TotalXP: int64(300 - i*100)})
	}

	w := env.do(t, http.MethodGet, "/api/guild/g1/economy/leaderboard?limit=2", "", "")
	var eco struct {
		Leaderboard []models.EconomyEntry `json:"leaderboard"`
	}
	decode(t, w, &eco)
	if len(eco.Leaderboard) != 2 || eco.Leaderboard[0].UserID != "c" {
		t.Errorf("economy leaderboard = %+v", eco.Leaderboard)
	}

	w = env.do(t, http.MethodGet, "/api/guild/g1/levels/leaderboard", "", "")
	var lvl struct {
		Leaderboard []models.LevelEntry `json:"leaderboard"`
	}
	decode(t, w, &lvl)
	if len(lvl.Leaderboard) != 3 || lvl.Leaderboard[0].UserID != "a" {
		t.Errorf("levels leaderboard = %+v", lvl.Leaderboard)
	}
}

func TestGuildRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, "s3cret")

	good, err := env.auth.IssueToken("u1", []string{"g1"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := env.auth.IssueToken("u1", []string{"g1"}, -time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := NewAuthenticator("other").IssueToken("u1", []string{"g1"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"no token", "/api/guild/g1", "", http.StatusUnauthorized},
		{"valid", "/api/guild/g1", good, http.StatusOK},
		{"other guild", "/api/guild/g2", good, http.StatusForbidden},
		{"expired", "/api/guild/g1", expired, http.StatusUnauthorized},
		{"wrong secret", "/api/guild/g1", foreign, http.StatusUnauthorized},
		{"public route", "/api/health", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := env.do(t, http.MethodGet, tt.path, "", tt.token); w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	repos := database.NewRepositories(database.NewStore(database.NewFileBackend(t.TempDir())))
	s := NewServer(Options{RequestsPerMinute: 1, Burst: 2})
	SetupAPIRoutes(s, &API{Repos: repos})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestNotFoundAndMetrics(t *testing.T) {
	env := newTestEnv(t, "")

	if w := env.do(t, http.MethodGet, "/nope", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d", w.Code)
	}

	env.do(t, http.MethodGet, "/api/health", "", "")
	w := env.do(t, http.MethodGet, "/metrics", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "toothless_web_requests_total") {
		t.Errorf("metrics endpoint missing request counter")
	}
}

func TestAllowedHosts(t *testing.T) {
	repos := database.NewRepositories(database.NewStore(database.NewFileBackend(t.TempDir())))
	s := NewServer(Options{AllowedHosts: `^dashboard\.example\.org$`})
	SetupAPIRoutes(s, &API{Repos: repos})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Host = "evil.example.com"
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestLiveFeed(t *testing.T) {
	env := newTestEnv(t, "")
	srv := httptest.NewServer(env.server.Engine())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/guild/g1/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() LiveMessage {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg LiveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		return msg
	}

	if msg := read(); msg.Type != "snapshot" || msg.GuildID != "g1" {
		t.Fatalf("first message = %+v, want snapshot", msg)
	}

	if _, err := env.repos.Guilds.Patch("g1", models.SectionLog, map[string]any{"enabled": true}); err != nil {
		t.Fatal(err)
	}

	msg := read()
	if msg.Type != "update" || msg.Document != database.DocGuilds {
		t.Fatalf("update = %+v", msg)
	}
	settings, _ := json.Marshal(msg.Settings)
	if !strings.Contains(string(settings), `"log":{"enabled":true`) {
		t.Errorf("update settings = %s", settings)
	}
}

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		allowed, origin string
		want            bool
	}{
		{"*", "https://anything.example", true},
		{"https://dash.example", "https://dash.example", true},
		{"https://dash.example", "https://evil.example", false},
		{"https://dash.example", "", true},
	}
	for _, tt := range tests {
		if got := originAllowed(tt.allowed, tt.origin); got != tt.want {
			t.Errorf("originAllowed(%q, %q) = %v, want %v", tt.allowed, tt.origin, got, tt.want)
		}
	}
}
