package mod

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createKickCommand creates the /mod kick subcommand
func createKickCommand() *discord.Command {
	return discord.NewCommand(
		"kick",
		"Expulsa a un usuario del servidor",
		"mod",
		kickHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a expulsar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la expulsión",
		},
	).WithUserPermissions(discordgo.PermissionKickMembers).
		WithBotPermissions(discordgo.PermissionKickMembers).
		InGuild()
}

func kickHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario.")
	}
	reason := reasonOr(ctx.GetStringOption("razon"))

	if err := ctx.Session.GuildMemberDeleteWithReason(ctx.GuildID(), user.ID, reason); err != nil {
		return common.ReplyError(ctx, fmt.Sprintf("Error al expulsar: %v", err))
	}

	if err := ctx.Reply(fmt.Sprintf("👢 **%s** ha sido expulsado.\n**Razón:** %s", user.Username, reason)); err != nil {
		return err
	}
	postLog(ctx, repos, LogEmbed("Expulsión", user.ID, ctx.User().ID, reason))
	return nil
}
