package mod

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a advertir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la advertencia",
			Required:    true,
			MaxLength:   512,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).InGuild()
}

func warnHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario.")
	}
	if user.Bot {
		return common.ReplyError(ctx, "No puedes advertir a un bot.")
	}
	reason := ctx.GetStringOption("razon")
	if reason == "" {
		return common.ReplyError(ctx, "Debes especificar una razón.")
	}

	warnings := repos.Warns.Add(ctx.GuildID(), user.ID, models.WarningInput{
		Reason:    reason,
		Moderator: ctx.User().ID,
		Extra:     map[string]string{"channelId": ctx.Interaction.ChannelID},
	})
	latest := warnings[len(warnings)-1]
	logger.Info(fmt.Sprintf("%s advirtió a %s en %s (id %d)", ctx.User().ID, user.ID, ctx.GuildID(), latest.ID), "CMD-Warn")

	embed := common.Embed("⚠️ Usuario advertido",
		fmt.Sprintf("**%s** ha sido advertido.", user.Username), colorWarn)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Razón", reason, false),
		common.Field("Moderador", ctx.User().Username, true),
		common.Field("ID", fmt.Sprintf("`%d`", latest.ID), true),
		common.Field("Total", fmt.Sprintf("%d", len(warnings)), true),
	}
	if err := ctx.ReplyEmbed(embed); err != nil {
		return err
	}

	notifyUser(ctx, user.ID, common.Embed("⚠️ Has recibido una advertencia",
		fmt.Sprintf("**Servidor:** %s\n**Razón:** %s", guildName(ctx), reason), colorWarn))
	postLog(ctx, repos, LogEmbed("Advertencia", user.ID, ctx.User().ID, reason))
	return nil
}
