// Package mod provides moderation commands organized as subcommands under /mod.
// Warnings are persisted in the warns document; every action is mirrored to
// the guild log channel when one is configured.
package mod

import (
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient) {
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"🛡️ Comandos de moderación",
		createWarnCommand(),
		createWarningsCommand(),
		createRemoveWarnCommand(),
		createClearWarnsCommand(),
		createBanCommand(),
		createKickCommand(),
		createMuteCommand(),
	)

	client.CommandHandler.AddGlobalCommand(modGroup)
}
