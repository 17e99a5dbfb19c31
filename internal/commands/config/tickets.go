package config

import (
	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func createTicketsCommand() *discord.Command {
	return discord.NewCommand(
		"tickets",
		"Configura el sistema de tickets",
		"config",
		ticketsHandler,
	).WithOptions(
		enabledOption(),
		channelOption("categoria", "Categoría de los tickets", discordgo.ChannelTypeGuildCategory),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "soporte",
			Description: "Rol del equipo de soporte",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mensaje",
			Description: "Mensaje de bienvenida del ticket",
		},
	)
}

func ticketsHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	patch := TicketsPatch(
		ctx.GetBoolOption("activado"),
		ctx.GetSnowflakeOption("categoria"),
		ctx.GetSnowflakeOption("soporte"),
		ctx.GetStringOption("mensaje"),
	)
	cfg, err := repos.Guilds.Patch(ctx.GuildID(), models.SectionTickets, patch)
	if err != nil {
		return replyPatchError(ctx, err)
	}

	embed := common.Embed("🎫 Tickets configurados", "", common.ColorTickets)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Estado", common.Status(cfg.Tickets.Enabled), true),
		common.Field("Categoría", common.ChannelMention(cfg.Tickets.CategoryID), true),
		common.Field("Rol de soporte", common.RoleMention(cfg.Tickets.SupportRoleID), true),
		common.Field("Mensaje", "`"+cfg.Tickets.WelcomeMessage+"`", false),
	}
	return ctx.ReplyEmbed(embed)
}
