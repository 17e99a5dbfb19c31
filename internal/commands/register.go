// Package commands wires every command category into the Discord client.
// Commands are organized in subdirectories by category.
package commands

import (
	"github.com/PancyStudios/ToothlessGo/internal/commands/config"
	"github.com/PancyStudios/ToothlessGo/internal/commands/dev"
	"github.com/PancyStudios/ToothlessGo/internal/commands/economy"
	"github.com/PancyStudios/ToothlessGo/internal/commands/fun"
	"github.com/PancyStudios/ToothlessGo/internal/commands/levels"
	"github.com/PancyStudios/ToothlessGo/internal/commands/mod"
	"github.com/PancyStudios/ToothlessGo/internal/commands/utils"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	utils.RegisterUtilsCommands(client)

	// /config view|reset|prefix|welcomer|log|tickets|levels|autoroles
	config.RegisterConfigCommands(client)

	economy.RegisterEconomyCommands(client)
	levels.RegisterLevelCommands(client)

	// /mod warn|warns|removewarn|clearwarns|ban|kick|mute
	mod.RegisterModCommands(client)

	fun.RegisterFunCommands(client)

	// Only synced to the development guild
	dev.Register(client)
}
