package events

import (
	"sync"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	lru "github.com/hashicorp/golang-lru"
)

const (
	// XPCooldown is the minimum time between two XP grants for one member
	XPCooldown = 60 * time.Second

	xpTrackerSize = 50_000
)

// Rand returns a number in [0, n)
type Rand func(n int) int

// XPTracker remembers when each member last earned XP. Old entries are
// evicted once the cache is full; an evicted member simply earns again.
type XPTracker struct {
	mu       sync.Mutex
	last     *lru.Cache
	cooldown time.Duration
}

// NewXPTracker creates a tracker holding up to size members
func NewXPTracker(size int, cooldown time.Duration) *XPTracker {
	cache, err := lru.New(size)
	if err != nil {
		// only fails for a non-positive size
		cache, _ = lru.New(xpTrackerSize)
	}
	return &XPTracker{last: cache, cooldown: cooldown}
}

// Allow reports whether key may earn XP at now and, if so, starts its cooldown
func (t *XPTracker) Allow(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.last.Get(key); ok {
		if now.Sub(v.(time.Time)) < t.cooldown {
			return false
		}
	}
	t.last.Add(key, now)
	return true
}

// RollXP picks an amount in [XPMin, XPMax]. A bad range collapses to XPMin
// and amounts are at least 1.
func RollXP(s models.LevelSettings, r Rand) int64 {
	lo, hi := max(s.XPMin, 1), s.XPMax
	if hi < lo {
		hi = lo
	}
	return int64(lo + r(hi-lo+1))
}

// XPGrant is the outcome of one message
type XPGrant struct {
	Granted   bool
	Amount    int64
	LeveledUp bool
	Progress  models.LevelProgress
	Settings  models.LevelSettings
}

// GrantMessageXP awards XP for a guild message when levels are enabled and
// the member is off cooldown
func GrantMessageXP(repos *database.Repositories, tracker *XPTracker, guildID, userID string, now time.Time, r Rand) XPGrant {
	settings := repos.Guilds.Get(guildID).Levels
	if !settings.Enabled {
		return XPGrant{Settings: settings}
	}
	if !tracker.Allow(database.CooldownKey("xp", guildID, userID), now) {
		return XPGrant{Settings: settings}
	}

	amount := RollXP(settings, r)
	progress, leveledUp := repos.Levels.AddXP(guildID, userID, amount)
	return XPGrant{
		Granted:   true,
		Amount:    amount,
		LeveledUp: leveledUp,
		Progress:  progress,
		Settings:  settings,
	}
}
