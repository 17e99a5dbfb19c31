package database

import (
	"sync"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

type warnsDoc = map[string]map[string][]models.Warning

// WarnRepository stores moderation warnings keyed by guild and user
type WarnRepository struct {
	store *Store
	dm    *DataManager[warnsDoc]

	idMu   sync.Mutex
	lastID int64
}

// NewWarnRepository registers the warns document on store
func NewWarnRepository(store *Store) *WarnRepository {
	return &WarnRepository{
		store: store,
		dm: NewDataManager(store, DocWarns, func() warnsDoc {
			return make(warnsDoc)
		}),
	}
}

// Get returns a copy of the user's warnings in creation order
func (r *WarnRepository) Get(guildID, userID string) []models.Warning {
	var warnings []models.Warning
	r.dm.View(func(doc *warnsDoc) {
		warnings = cloneWarnings((*doc)[guildID][userID])
	})
	return warnings
}

// Add appends a warning and returns the full list afterwards
func (r *WarnRepository) Add(guildID, userID string, in models.WarningInput) []models.Warning {
	var warnings []models.Warning
	r.dm.Update(func(doc *warnsDoc) bool {
		ensureMap(doc)
		guild := (*doc)[guildID]
		if guild == nil {
			guild = make(map[string][]models.Warning)
			(*doc)[guildID] = guild
		}

		now := r.store.Now()
		w := models.Warning{
			ID:        r.nextID(now, guild[userID]),
			Timestamp: now.UTC().Format(time.RFC3339),
			Reason:    in.Reason,
			Moderator: in.Moderator,
		}
		if len(in.Extra) > 0 {
			w.Extra = make(map[string]string, len(in.Extra))
			for k, v := range in.Extra {
				w.Extra[k] = v
			}
		}

		guild[userID] = append(guild[userID], w)
		warnings = cloneWarnings(guild[userID])
		return true
	})
	r.store.notify(ChangeEvent{Document: DocWarns, GuildID: guildID, UserID: userID})
	return warnings
}

// Remove deletes the warning with the given id. It reports false when the
// user has no warnings or no warning matches.
func (r *WarnRepository) Remove(guildID, userID string, id int64) bool {
	removed := false
	r.dm.Update(func(doc *warnsDoc) bool {
		list := (*doc)[guildID][userID]
		for i, w := range list {
			if w.ID != id {
				continue
			}
			(*doc)[guildID][userID] = append(list[:i:i], list[i+1:]...)
			removed = true
			return true
		}
		return false
	})
	if removed {
		r.store.notify(ChangeEvent{Document: DocWarns, GuildID: guildID, UserID: userID})
	}
	return removed
}

// Clear drops every warning of the user. It always reports true.
func (r *WarnRepository) Clear(guildID, userID string) bool {
	r.dm.Update(func(doc *warnsDoc) bool {
		ensureMap(doc)
		guild := (*doc)[guildID]
		if guild == nil {
			guild = make(map[string][]models.Warning)
			(*doc)[guildID] = guild
		}
		guild[userID] = []models.Warning{}
		return true
	})
	r.store.notify(ChangeEvent{Document: DocWarns, GuildID: guildID, UserID: userID})
	return true
}

// nextID returns max(now in ms, last issued + 1). The existing list is
// consulted so ids stay unique after a restart with a skewed clock.
func (r *WarnRepository) nextID(now time.Time, existing []models.Warning) int64 {
	r.idMu.Lock()
	defer r.idMu.Unlock()

	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	for _, w := range existing {
		if w.ID >= id {
			id = w.ID + 1
		}
	}
	r.lastID = id
	return id
}

func cloneWarnings(in []models.Warning) []models.Warning {
	out := make([]models.Warning, len(in))
	for i, w := range in {
		out[i] = w.Clone()
	}
	return out
}
