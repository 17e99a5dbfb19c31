package database

import (
	"strings"
	"time"
)

type cooldownsDoc = map[string]int64

// CooldownRepository persists the last-use time of rate-limited features
// as unix milliseconds in a flat table.
type CooldownRepository struct {
	store *Store
	dm    *DataManager[cooldownsDoc]
}

// NewCooldownRepository registers the cooldowns document on store
func NewCooldownRepository(store *Store) *CooldownRepository {
	return &CooldownRepository{
		store: store,
		dm: NewDataManager(store, DocCooldowns, func() cooldownsDoc {
			return make(cooldownsDoc)
		}),
	}
}

// CooldownKey builds the "<feature>_<guild>_<user>" key
func CooldownKey(feature, guildID, userID string) string {
	return strings.Join([]string{feature, guildID, userID}, "_")
}

// Last returns the last recorded use for key
func (r *CooldownRepository) Last(key string) (time.Time, bool) {
	var (
		ms int64
		ok bool
	)
	r.dm.View(func(doc *cooldownsDoc) {
		ms, ok = (*doc)[key]
	})
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Set records t as the last use of key
func (r *CooldownRepository) Set(key string, t time.Time) {
	r.dm.Update(func(doc *cooldownsDoc) bool {
		ensureMap(doc)
		(*doc)[key] = t.UnixMilli()
		return true
	})
}

// Remaining returns how long key stays on cooldown at now
func (r *CooldownRepository) Remaining(key string, window time.Duration, now time.Time) time.Duration {
	last, ok := r.Last(key)
	if !ok {
		return 0
	}
	if left := window - now.Sub(last); left > 0 {
		return left
	}
	return 0
}

// TryAcquire records now as the last use of key unless key was used within
// window. When it refuses, remaining is the time left on the cooldown.
func (r *CooldownRepository) TryAcquire(key string, window time.Duration, now time.Time) (ok bool, remaining time.Duration) {
	r.dm.Update(func(doc *cooldownsDoc) bool {
		ensureMap(doc)
		if ms, exists := (*doc)[key]; exists {
			if left := window - now.Sub(time.UnixMilli(ms)); left > 0 {
				remaining = left
				return false
			}
		}
		(*doc)[key] = now.UnixMilli()
		ok = true
		return true
	})
	return ok, remaining
}
