// Package dev provides maintenance commands registered only in the
// development guild.
package dev

import (
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// Register builds the /dev group and adds it to the dev command list
func Register(client *discord.ExtendedClient) {
	devGroup := client.CommandHandler.BuildCommandGroup(
		"dev",
		"🛠️ Comandos de desarrollo",
		devOnly(createFlushCommand()),
		devOnly(createSyncCommand()),
		devOnly(createConfigDumpCommand()),
	)

	economyGroup := client.CommandHandler.BuildSubcommandGroup(
		"dev",
		"economy",
		"Ajustes manuales de economía",
		devOnly(createGiveCommand()),
		devOnly(createResetAccountCommand()),
	)
	devGroup.Options = append(devGroup.Options, economyGroup)

	client.CommandHandler.AddDevCommand(devGroup)
}

func devOnly(cmd *discord.Command) *discord.Command {
	return cmd.AsDev().WithUserPermissions(discordgo.PermissionAdministrator)
}
