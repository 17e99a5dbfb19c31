package config

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func createViewCommand() *discord.Command {
	return discord.NewCommand(
		"view",
		"Muestra la configuración actual",
		"config",
		viewHandler,
	)
}

func viewHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	cfg := repos.Guilds.Get(ctx.GuildID())
	guildName := ctx.GuildID()
	if g := ctx.Guild(); g != nil {
		guildName = g.Name
	}

	embed := common.Embed("🐉 Configuración de Toothless",
		fmt.Sprintf("Configuración de **%s**", guildName), common.ColorSuccess)
	embed.Fields = ConfigFields(cfg)
	embed.Footer.Text = "Usa /config <módulo> para modificar"
	return ctx.ReplyEmbed(embed)
}

// ConfigFields renders every section of cfg as embed fields
func ConfigFields(cfg models.GuildConfig) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		common.Field("👋 Bienvenida", fmt.Sprintf("Estado: %s\nCanal: %s\nMensaje: `%s`\nRol: %s\nDespedida: %s",
			common.Status(cfg.Welcome.Enabled),
			common.ChannelMention(cfg.Welcome.ChannelID),
			cfg.Welcome.Message,
			common.RoleMention(cfg.Welcome.RoleID),
			common.Status(cfg.Welcome.LeaveEnabled),
		), true),
		common.Field("📝 Logs", fmt.Sprintf("Estado: %s\nCanal: %s",
			common.Status(cfg.Log.Enabled),
			common.ChannelMention(cfg.Log.ChannelID),
		), true),
		common.Field("🎫 Tickets", fmt.Sprintf("Estado: %s\nCategoría: %s\nSoporte: %s",
			common.Status(cfg.Tickets.Enabled),
			common.ChannelMention(cfg.Tickets.CategoryID),
			common.RoleMention(cfg.Tickets.SupportRoleID),
		), true),
		common.Field("⭐ Niveles", fmt.Sprintf("Estado: %s\nAnuncios: %s\nXP: %d-%d por mensaje",
			common.Status(cfg.Levels.Enabled),
			common.ChannelMention(cfg.Levels.AnnounceChannelID),
			cfg.Levels.XPMin, cfg.Levels.XPMax,
		), true),
		common.Field("💰 Economía", fmt.Sprintf("Estado: %s\nMoneda: %s",
			common.Status(cfg.Economy.Enabled),
			cfg.Economy.Currency,
		), true),
		common.Field("⚙️ General", fmt.Sprintf("Prefijo: `%s`\nAutoroles: %s", cfg.Prefix, RoleList(cfg.AutoRoles)), true),
	}
}

// RoleList renders role IDs as mentions
func RoleList(ids []string) string {
	if len(ids) == 0 {
		return "Ninguno"
	}
	mentions := make([]string, len(ids))
	for i, id := range ids {
		mentions[i] = "<@&" + id + ">"
	}
	return strings.Join(mentions, " ")
}
