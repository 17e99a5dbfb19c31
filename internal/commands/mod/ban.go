package mod

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createBanCommand creates the /mod ban subcommand
func createBanCommand() *discord.Command {
	minDays := 0.0
	return discord.NewCommand(
		"ban",
		"Banea a un usuario del servidor",
		"mod",
		banHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a banear",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del ban",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Días de mensajes a eliminar (0-7)",
			MinValue:    &minDays,
			MaxValue:    7,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		InGuild()
}

func banHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario.")
	}
	if user.ID == ctx.User().ID {
		return common.ReplyError(ctx, "No puedes banearte a ti mismo.")
	}
	reason := reasonOr(ctx.GetStringOption("razon"))

	err := ctx.Session.GuildBanCreateWithReason(ctx.GuildID(), user.ID, reason, int(ctx.GetIntOption("dias")))
	if err != nil {
		return common.ReplyError(ctx, fmt.Sprintf("Error al banear: %v", err))
	}

	if err := ctx.Reply(fmt.Sprintf("🔨 **%s** ha sido baneado.\n**Razón:** %s", user.Username, reason)); err != nil {
		return err
	}
	postLog(ctx, repos, LogEmbed("Ban", user.ID, ctx.User().ID, reason))
	return nil
}
