package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// memBackend is an in-memory Backend that counts saves per document
type memBackend struct {
	mu      sync.Mutex
	docs    map[string][]byte
	saves   map[string]int
	loadErr error
	saveErr error
}

func newMemBackend() *memBackend {
	return &memBackend{
		docs:  make(map[string][]byte),
		saves: make(map[string]int),
	}
}

func (b *memBackend) Load(name string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return nil, false, b.loadErr
	}
	data, ok := b.docs[name]
	return data, ok, nil
}

func (b *memBackend) Save(name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.docs[name] = append([]byte(nil), data...)
	b.saves[name]++
	return nil
}

func (b *memBackend) String() string { return "mem" }

func (b *memBackend) saveCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves[name]
}

func TestFileBackendRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	b := NewFileBackend(dir)

	if _, ok, err := b.Load("guilds"); ok || err != nil {
		t.Fatalf("Load() on empty dir = ok %v, err %v; want false, nil", ok, err)
	}

	payload := []byte(`{"1":{"prefix":"?"}}`)
	if err := b.Save("guilds", payload); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	data, ok, err := b.Load("guilds")
	if err != nil || !ok {
		t.Fatalf("Load() = ok %v, err %v", ok, err)
	}
	if string(data) != string(payload) {
		t.Errorf("Load() = %s, want %s", data, payload)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "guilds.json" {
		t.Errorf("data dir should only contain guilds.json, got %v", entries)
	}
}

func TestDataManagerWritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(NewFileBackend(dir))
	guilds := NewGuildRepository(store)

	guilds.Get("g1")

	data, err := os.ReadFile(filepath.Join(dir, "guilds.json"))
	if err != nil {
		t.Fatalf("guilds.json not written: %v", err)
	}
	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("guilds.json is not valid JSON: %v", err)
	}
	if _, ok := decoded["g1"]; !ok {
		t.Error("guilds.json should contain g1")
	}
	if len(data) < 2 || data[1] != '\n' {
		t.Error("guilds.json should be indented")
	}
}

func TestDataManagerHydratesOnce(t *testing.T) {
	backend := newMemBackend()
	backend.docs[DocLevels] = []byte(`{"g":{"u":{"xp":10,"level":2,"totalXp":310}}}`)

	store := NewStore(backend)
	levels := NewLevelRepository(store)

	got := levels.Get("g", "u")
	if got.XP != 10 || got.Level != 2 || got.TotalXP != 310 {
		t.Fatalf("Get() = %+v, want xp 10 level 2 totalXp 310", got)
	}

	// later backend changes are not observed: the cache is authoritative
	backend.docs[DocLevels] = []byte(`{}`)
	if got := levels.Get("g", "u"); got.XP != 10 {
		t.Errorf("Get() after hydration = %+v, want cached value", got)
	}
}

func TestDataManagerMalformedJSONFallsBackToDefault(t *testing.T) {
	backend := newMemBackend()
	backend.docs[DocGuilds] = []byte(`{not json`)

	guilds := NewGuildRepository(NewStore(backend))
	cfg := guilds.Get("g")
	if cfg.Prefix != "!" {
		t.Errorf("Get() prefix = %q, want default", cfg.Prefix)
	}
}

func TestPersistenceFailureResilience(t *testing.T) {
	backend := newMemBackend()
	backend.loadErr = errors.New("disk on fire")
	backend.saveErr = errors.New("read-only file system")

	repos := NewRepositories(NewStore(backend))

	cfg := repos.Guilds.Get("g")
	if cfg.Prefix != "!" || cfg.Welcome.Enabled {
		t.Errorf("Guilds.Get() = %+v, want defaults", cfg)
	}

	acc := repos.Economy.Get("g", "u")
	if acc.Wallet != 0 || acc.Bank != 0 || acc.Inventory == nil {
		t.Errorf("Economy.Get() = %+v, want empty account", acc)
	}

	// mutations keep working in memory
	progress, _ := repos.Levels.AddXP("g", "u", 40)
	if progress.XP != 40 {
		t.Errorf("AddXP() = %+v, want xp 40", progress)
	}
	if got := repos.Levels.Get("g", "u"); got.XP != 40 {
		t.Errorf("Get() after failed save = %+v, want in-memory value", got)
	}
}

func TestUnwritableDirectoryResilience(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// a regular file where the data dir should be makes every save fail
	store := NewStore(NewFileBackend(filepath.Join(blocker, "data")))
	guilds := NewGuildRepository(store)

	cfg := guilds.Get("g")
	if cfg.Prefix != "!" {
		t.Errorf("Get() prefix = %q, want default", cfg.Prefix)
	}
	if err := store.Flush(); err == nil {
		t.Error("Flush() should report the save failure")
	}
}

func TestStorePreloadAndFlush(t *testing.T) {
	backend := newMemBackend()
	backend.docs[DocEconomy] = []byte(`{"g":{"u":{"wallet":5,"bank":7,"inventory":[]}}}`)

	repos := NewRepositories(NewStore(backend))
	if err := repos.Store.Preload(context.Background()); err != nil {
		t.Fatalf("Preload() returned error: %v", err)
	}

	if err := repos.Store.Flush(); err != nil {
		t.Fatalf("Flush() returned error: %v", err)
	}
	for _, name := range []string{DocGuilds, DocEconomy, DocLevels, DocWarns, DocCooldowns} {
		if backend.saveCount(name) != 1 {
			t.Errorf("Flush() saved %s %d times, want 1", name, backend.saveCount(name))
		}
	}
	if got := repos.Economy.Get("g", "u"); got.Total() != 12 {
		t.Errorf("Total() = %d, want 12", got.Total())
	}
}

func TestStoreRejectsDuplicateDocuments(t *testing.T) {
	store := NewStore(newMemBackend())
	NewGuildRepository(store)

	defer func() {
		if recover() == nil {
			t.Error("registering guilds twice should panic")
		}
	}()
	NewGuildRepository(store)
}

func TestStoreNotifiesListeners(t *testing.T) {
	store := NewStore(newMemBackend())
	guilds := NewGuildRepository(store)

	var events []ChangeEvent
	store.Subscribe(func(ev ChangeEvent) {
		events = append(events, ev)
	})

	guilds.Get("g")
	guilds.Get("g")
	if _, err := guilds.Patch("g", "log", map[string]any{"enabled": true}); err != nil {
		t.Fatal(err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (create + patch)", len(events))
	}
	for _, ev := range events {
		if ev.Document != DocGuilds || ev.GuildID != "g" {
			t.Errorf("unexpected event %+v", ev)
		}
	}
}

func TestStoreClock(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(newMemBackend(), WithClock(func() time.Time { return fixed }))
	if !store.Now().Equal(fixed) {
		t.Errorf("Now() = %v, want %v", store.Now(), fixed)
	}
}
