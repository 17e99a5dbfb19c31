// Package events provides the gateway event handlers of the bot.
// Events are organized by category (ready, guild, member, message).
package events

import (
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	RegisterReadyEvent(client)

	// join/leave of the bot itself
	RegisterGuildEvents(client)

	// welcome, leave and autoroles
	RegisterMemberEvents(client)

	// XP and mention replies
	RegisterMessageEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
