package config

import (
	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func createLogCommand() *discord.Command {
	return discord.NewCommand(
		"log",
		"Configura el canal de registros de moderación",
		"config",
		logHandler,
	).WithOptions(
		enabledOption(),
		channelOption("canal", "Canal de registros", discordgo.ChannelTypeGuildText),
	)
}

func logHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	patch := LogPatch(ctx.GetBoolOption("activado"), ctx.GetSnowflakeOption("canal"))
	cfg, err := repos.Guilds.Patch(ctx.GuildID(), models.SectionLog, patch)
	if err != nil {
		return replyPatchError(ctx, err)
	}

	embed := common.Embed("📝 Registros configurados", "", common.ColorSuccess)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Estado", common.Status(cfg.Log.Enabled), true),
		common.Field("Canal", common.ChannelMention(cfg.Log.ChannelID), true),
	}
	return ctx.ReplyEmbed(embed)
}
