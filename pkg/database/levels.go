package database

import (
	"sort"

	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

type levelsDoc = map[string]map[string]models.LevelProgress

// LevelRepository stores XP progression keyed by guild and user
type LevelRepository struct {
	store *Store
	dm    *DataManager[levelsDoc]
}

// NewLevelRepository registers the levels document on store
func NewLevelRepository(store *Store) *LevelRepository {
	return &LevelRepository{
		store: store,
		dm: NewDataManager(store, DocLevels, func() levelsDoc {
			return make(levelsDoc)
		}),
	}
}

// Get returns the progress, creating a zeroed record on first access
func (r *LevelRepository) Get(guildID, userID string) models.LevelProgress {
	var progress models.LevelProgress
	r.dm.Update(func(doc *levelsDoc) bool {
		p, created := progressFor(doc, guildID, userID)
		progress = p
		return created
	})
	return progress
}

// Set replaces the progress record
func (r *LevelRepository) Set(guildID, userID string, progress models.LevelProgress) models.LevelProgress {
	r.dm.Update(func(doc *levelsDoc) bool {
		progressFor(doc, guildID, userID)
		(*doc)[guildID][userID] = progress
		return true
	})
	r.store.notify(ChangeEvent{Document: DocLevels, GuildID: guildID, UserID: userID})
	return progress
}

// Update runs fn on the progress under the document lock and persists it
func (r *LevelRepository) Update(guildID, userID string, fn func(progress *models.LevelProgress)) models.LevelProgress {
	var progress models.LevelProgress
	r.dm.Update(func(doc *levelsDoc) bool {
		p, _ := progressFor(doc, guildID, userID)
		fn(&p)
		(*doc)[guildID][userID] = p
		progress = p
		return true
	})
	r.store.notify(ChangeEvent{Document: DocLevels, GuildID: guildID, UserID: userID})
	return progress
}

// AddXP credits amount and applies the level-up rule. A single award moves
// the user up at most one level; it reports whether that happened.
func (r *LevelRepository) AddXP(guildID, userID string, amount int64) (models.LevelProgress, bool) {
	leveledUp := false
	progress := r.Update(guildID, userID, func(p *models.LevelProgress) {
		leveledUp = p.AddXP(amount)
	})
	return progress, leveledUp
}

// Leaderboard returns up to limit users ordered by lifetime XP
func (r *LevelRepository) Leaderboard(guildID string, limit int) []models.LevelEntry {
	var entries []models.LevelEntry
	r.dm.View(func(doc *levelsDoc) {
		for userID, p := range (*doc)[guildID] {
			entries = append(entries, models.LevelEntry{
				UserID:  userID,
				Level:   p.Level,
				XP:      p.XP,
				TotalXP: p.TotalXP,
			})
		}
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalXP != entries[j].TotalXP {
			return entries[i].TotalXP > entries[j].TotalXP
		}
		return entries[i].UserID < entries[j].UserID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []models.LevelEntry{}
	}
	return entries
}

// Rank returns the 1-based position of the user by lifetime XP, or 0 if
// the user has no record in the guild.
func (r *LevelRepository) Rank(guildID, userID string) int {
	for i, entry := range r.Leaderboard(guildID, 0) {
		if entry.UserID == userID {
			return i + 1
		}
	}
	return 0
}

func progressFor(doc *levelsDoc, guildID, userID string) (models.LevelProgress, bool) {
	ensureMap(doc)
	guild, ok := (*doc)[guildID]
	if !ok || guild == nil {
		guild = make(map[string]models.LevelProgress)
		(*doc)[guildID] = guild
	}
	if p, ok := guild[userID]; ok {
		return p, false
	}
	guild[userID] = models.LevelProgress{}
	return models.LevelProgress{}, true
}
