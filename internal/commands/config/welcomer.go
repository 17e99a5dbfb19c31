package config

import (
	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func createWelcomerCommand() *discord.Command {
	return discord.NewCommand(
		"welcomer",
		"Configura los mensajes de bienvenida y despedida",
		"config",
		welcomerHandler,
	).WithOptions(
		enabledOption(),
		channelOption("canal", "Canal de los mensajes", discordgo.ChannelTypeGuildText),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mensaje",
			Description: "Mensaje de bienvenida ({user}, {username}, {server}, {memberCount})",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol que se asigna al entrar",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "despedida",
			Description: "Enviar un mensaje cuando alguien sale",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mensaje_despedida",
			Description: "Mensaje de despedida ({username}, {server}, {memberCount})",
		},
	)
}

func welcomerHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	opts := WelcomeOptions{
		Enabled:      ctx.GetBoolOption("activado"),
		ChannelID:    ctx.GetSnowflakeOption("canal"),
		Message:      ctx.GetStringOption("mensaje"),
		RoleID:       ctx.GetSnowflakeOption("rol"),
		LeaveMessage: ctx.GetStringOption("mensaje_despedida"),
	}
	if ctx.HasOption("despedida") {
		leave := ctx.GetBoolOption("despedida")
		opts.LeaveEnabled = &leave
	}

	cfg, err := repos.Guilds.Patch(ctx.GuildID(), models.SectionWelcome, WelcomePatch(opts))
	if err != nil {
		return replyPatchError(ctx, err)
	}

	w := cfg.Welcome
	embed := common.Embed("👋 Bienvenida configurada", "", common.ColorSuccess)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Estado", common.Status(w.Enabled), true),
		common.Field("Canal", common.ChannelMention(w.ChannelID), true),
		common.Field("Rol automático", common.RoleMention(w.RoleID), true),
		common.Field("Mensaje", "`"+w.Message+"`", false),
		common.Field("Despedida", common.Status(w.LeaveEnabled)+"\n`"+w.LeaveMessage+"`", false),
	}
	embed.Footer.Text = "Variables: {user} {username} {server} {memberCount}"
	return ctx.ReplyEmbed(embed)
}
