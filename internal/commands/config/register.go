package config

import (
	"errors"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// RegisterConfigCommands registers the /config group
func RegisterConfigCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"config",
		"⚙️ Configura el bot para este servidor",
		adminOnly(createViewCommand()),
		adminOnly(createResetCommand()),
		adminOnly(createPrefixCommand()),
		adminOnly(createWelcomerCommand()),
		adminOnly(createLogCommand()),
		adminOnly(createTicketsCommand()),
		adminOnly(createLevelsCommand()),
		adminOnly(createAutoRolesCommand()),
	)
	client.CommandHandler.AddGlobalCommand(group)
}

func adminOnly(cmd *discord.Command) *discord.Command {
	return cmd.WithUserPermissions(discordgo.PermissionAdministrator).InGuild()
}

func enabledOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "activado",
		Description: "Activar o desactivar",
		Required:    true,
	}
}

func channelOption(name, description string, types ...discordgo.ChannelType) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         name,
		Description:  description,
		ChannelTypes: types,
	}
}

// replyPatchError answers rejected patches and passes other errors through
func replyPatchError(ctx *discord.CommandContext, err error) error {
	if errors.Is(err, database.ErrInvalidPatch) || errors.Is(err, database.ErrUnknownSection) {
		return common.ReplyError(ctx, "La configuración enviada no es válida.")
	}
	return err
}
