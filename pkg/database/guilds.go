package database

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/goccy/go-json"
)

// GuildRepository stores one GuildConfig per guild
type GuildRepository struct {
	store *Store
	dm    *DataManager[map[string]models.GuildConfig]
}

// NewGuildRepository registers the guilds document on store
func NewGuildRepository(store *Store) *GuildRepository {
	return &GuildRepository{
		store: store,
		dm: NewDataManager(store, DocGuilds, func() map[string]models.GuildConfig {
			return make(map[string]models.GuildConfig)
		}),
	}
}

// Get returns the guild configuration, creating and persisting the
// default one on first access.
func (r *GuildRepository) Get(guildID string) models.GuildConfig {
	var cfg models.GuildConfig
	created := false

	r.dm.Update(func(guilds *map[string]models.GuildConfig) bool {
		ensureMap(guilds)
		if existing, ok := (*guilds)[guildID]; ok {
			cfg = existing.Clone()
			return false
		}
		cfg = models.DefaultGuildConfig()
		(*guilds)[guildID] = cfg.Clone()
		created = true
		return true
	})

	if created {
		r.store.notify(ChangeEvent{Document: DocGuilds, GuildID: guildID})
	}
	return cfg
}

// Exists reports whether a configuration is stored for the guild
func (r *GuildRepository) Exists(guildID string) bool {
	found := false
	r.dm.View(func(guilds *map[string]models.GuildConfig) {
		_, found = (*guilds)[guildID]
	})
	return found
}

// Set shallow-merges update into the stored configuration: each non-nil
// top-level field replaces the stored one wholesale.
func (r *GuildRepository) Set(guildID string, update models.GuildConfigUpdate) models.GuildConfig {
	var cfg models.GuildConfig

	r.dm.Update(func(guilds *map[string]models.GuildConfig) bool {
		ensureMap(guilds)
		current, ok := (*guilds)[guildID]
		if !ok {
			current = models.DefaultGuildConfig()
		}
		cfg = current.Apply(update)
		(*guilds)[guildID] = cfg.Clone()
		return true
	})

	r.store.notify(ChangeEvent{Document: DocGuilds, GuildID: guildID})
	return cfg
}

// Reset replaces the guild configuration with the defaults
func (r *GuildRepository) Reset(guildID string) models.GuildConfig {
	cfg := models.DefaultGuildConfig()

	r.dm.Update(func(guilds *map[string]models.GuildConfig) bool {
		ensureMap(guilds)
		(*guilds)[guildID] = cfg.Clone()
		return true
	})

	r.store.notify(ChangeEvent{Document: DocGuilds, GuildID: guildID})
	return cfg
}

// Patch merges partial into one section of the configuration, one level
// deep. Sibling sections are left untouched.
func (r *GuildRepository) Patch(guildID, section string, partial map[string]any) (models.GuildConfig, error) {
	if !models.IsSection(section) {
		return models.GuildConfig{}, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	var (
		cfg      models.GuildConfig
		patchErr error
	)

	r.dm.Update(func(guilds *map[string]models.GuildConfig) bool {
		ensureMap(guilds)
		current, ok := (*guilds)[guildID]
		if !ok {
			current = models.DefaultGuildConfig()
		}

		updated, err := patchSection(current.Clone(), section, partial)
		if err != nil {
			patchErr = err
			cfg = current.Clone()
			if !ok {
				(*guilds)[guildID] = current
				return true
			}
			return false
		}

		cfg = updated
		(*guilds)[guildID] = updated.Clone()
		return true
	})

	if patchErr != nil {
		return cfg, patchErr
	}
	r.store.notify(ChangeEvent{Document: DocGuilds, GuildID: guildID})
	return cfg, nil
}

// patchSection merges partial into the named section of cfg
func patchSection(cfg models.GuildConfig, section string, partial map[string]any) (models.GuildConfig, error) {
	var err error
	switch section {
	case models.SectionWelcome:
		err = mergeInto(&cfg.Welcome, partial)
	case models.SectionLog:
		err = mergeInto(&cfg.Log, partial)
	case models.SectionTickets:
		err = mergeInto(&cfg.Tickets, partial)
	case models.SectionLevels:
		err = mergeInto(&cfg.Levels, partial)
	case models.SectionEconomy:
		err = mergeInto(&cfg.Economy, partial)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	return cfg, err
}

// mergeInto overlays the keys of partial onto target's JSON representation
func mergeInto[T any](target *T, partial map[string]any) error {
	raw, err := json.Marshal(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	for k, v := range partial {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	*target = out
	return nil
}

func ensureMap[K comparable, V any](m *map[K]V) {
	if *m == nil {
		*m = make(map[K]V)
	}
}
