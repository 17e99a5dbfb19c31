package mod

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createClearWarnsCommand creates the /mod clearwarns subcommand
func createClearWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarns",
		"Elimina todas las advertencias de un usuario",
		"mod",
		clearWarnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a limpiar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).InGuild()
}

func clearWarnsHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario válido.")
	}

	count := len(repos.Warns.Get(ctx.GuildID(), user.ID))
	if count == 0 {
		return common.ReplyError(ctx, "El usuario no tiene advertencias.")
	}
	repos.Warns.Clear(ctx.GuildID(), user.ID)

	if err := ctx.ReplyEmbed(common.Embed("🧹 Advertencias eliminadas",
		fmt.Sprintf("Se eliminaron **%d** advertencias de **%s**.", count, user.Username), common.ColorSuccess)); err != nil {
		return err
	}
	postLog(ctx, repos, LogEmbed("Advertencias eliminadas", user.ID, ctx.User().ID, fmt.Sprintf("%d advertencias", count)))
	return nil
}
