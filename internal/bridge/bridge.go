// Package bridge exposes the guild store to external dashboards over MQTT.
// Requests arrive on <prefix>/request/<name> and are answered on
// <prefix>/response/<name>/<correlationId>; configuration changes are
// pushed to <prefix>/events/guild/<guildId>.
package bridge

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/PancyStudios/ToothlessGo/pkg/mqtt"
)

// Request names
const (
	TopicGuildGet           = "guild.get"
	TopicGuildPatch         = "guild.patch"
	TopicEconomyLeaderboard = "economy.leaderboard"
	TopicLevelsLeaderboard  = "levels.leaderboard"
)

const (
	defaultLeaderboardSize = 20
	maxLeaderboardSize     = 100
)

var (
	ErrMissingGuild   = errors.New("guildId is required")
	ErrMissingSection = errors.New("section is required")
	ErrMissingData    = errors.New("data must be an object")
)

// Bridge answers MQTT requests from the repositories
type Bridge struct {
	mc    *mqtt.MqttCommunicator
	repos *database.Repositories
}

// New creates a Bridge over an MQTT communicator
func New(mc *mqtt.MqttCommunicator, repos *database.Repositories) *Bridge {
	return &Bridge{mc: mc, repos: repos}
}

// Register subscribes every request handler and starts publishing guild
// configuration changes
func (b *Bridge) Register() error {
	handlers := map[string]mqtt.RequestHandler{
		TopicGuildGet:           b.GuildGet,
		TopicGuildPatch:         b.GuildPatch,
		TopicEconomyLeaderboard: b.EconomyLeaderboard,
		TopicLevelsLeaderboard:  b.LevelsLeaderboard,
	}
	for name, handler := range handlers {
		if err := b.mc.On(name, handler); err != nil {
			return fmt.Errorf("subscribing %s: %w", name, err)
		}
	}

	b.repos.Store.Subscribe(b.onChange)

	logger.System(fmt.Sprintf("Puente MQTT activo (%d peticiones)", len(handlers)), "Bridge")
	return nil
}

// GuildGet returns the full configuration of payload.guildId
func (b *Bridge) GuildGet(payload map[string]any) (any, error) {
	guildID, err := guildIDFrom(payload)
	if err != nil {
		return nil, err
	}
	return b.repos.Guilds.Get(guildID), nil
}

// GuildPatch merges payload.data into payload.section of payload.guildId
func (b *Bridge) GuildPatch(payload map[string]any) (any, error) {
	guildID, err := guildIDFrom(payload)
	if err != nil {
		return nil, err
	}

	name, _ := payload["section"].(string)
	if name == "" {
		return nil, ErrMissingSection
	}
	section, ok := models.ResolveSection(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", database.ErrUnknownSection, name)
	}

	data, ok := payload["data"].(map[string]any)
	if !ok {
		return nil, ErrMissingData
	}

	cfg, err := b.repos.Guilds.Patch(guildID, section, data)
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "data": cfg.Section(section)}, nil
}

// EconomyLeaderboard returns the richest members of payload.guildId
func (b *Bridge) EconomyLeaderboard(payload map[string]any) (any, error) {
	guildID, err := guildIDFrom(payload)
	if err != nil {
		return nil, err
	}
	board := b.repos.Economy.Leaderboard(guildID, limitFrom(payload))
	return map[string]any{"leaderboard": board}, nil
}

// LevelsLeaderboard returns the members of payload.guildId with the most XP
func (b *Bridge) LevelsLeaderboard(payload map[string]any) (any, error) {
	guildID, err := guildIDFrom(payload)
	if err != nil {
		return nil, err
	}
	board := b.repos.Levels.Leaderboard(guildID, limitFrom(payload))
	return map[string]any{"leaderboard": board}, nil
}

// onChange runs synchronously inside the store, so publishing is handed off
func (b *Bridge) onChange(ev database.ChangeEvent) {
	if ev.Document != database.DocGuilds || ev.GuildID == "" {
		return
	}
	go b.publishGuild(ev.GuildID)
}

func (b *Bridge) publishGuild(guildID string) {
	if !b.mc.IsConnected() {
		return
	}
	event := map[string]any{
		"type":     "guild.updated",
		"guildId":  guildID,
		"settings": b.repos.Guilds.Get(guildID),
	}
	if err := b.mc.Publish(b.mc.EventTopic("guild/"+guildID), event); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar el cambio de %s: %v", guildID, err), "Bridge")
	}
}

func guildIDFrom(payload map[string]any) (string, error) {
	guildID, _ := payload["guildId"].(string)
	if guildID == "" {
		return "", ErrMissingGuild
	}
	return guildID, nil
}

// limitFrom accepts the limit as a JSON number or a numeric string
func limitFrom(payload map[string]any) int {
	limit := defaultLeaderboardSize
	switch v := payload["limit"].(type) {
	case float64:
		limit = int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if limit <= 0 {
		return defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		return maxLeaderboardSize
	}
	return limit
}
