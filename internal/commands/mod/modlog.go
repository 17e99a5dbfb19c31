package mod

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

const (
	defaultReason = "Sin razón especificada"
	colorWarn     = 0xFFA500
)

func reasonOr(reason string) string {
	if reason == "" {
		return defaultReason
	}
	return reason
}

// canModerate reports whether the member may act on other users' warnings
func canModerate(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	return member.Permissions&(discordgo.PermissionAdministrator|discordgo.PermissionModerateMembers) != 0
}

// LogEmbed builds the log channel entry for a moderation action
func LogEmbed(action, targetID, moderatorID, reason string) *discordgo.MessageEmbed {
	embed := common.Embed("📝 "+action, "", colorWarn)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Usuario", fmt.Sprintf("<@%s> (`%s`)", targetID, targetID), true),
		common.Field("Moderador", fmt.Sprintf("<@%s>", moderatorID), true),
		common.Field("Razón", reasonOr(reason), false),
	}
	return embed
}

// postLog sends embed to the guild log channel if logging is enabled
func postLog(ctx *discord.CommandContext, repos *database.Repositories, embed *discordgo.MessageEmbed) {
	cfg := repos.Guilds.Get(ctx.GuildID()).Log
	if !cfg.Enabled || cfg.ChannelID == nil || *cfg.ChannelID == "" {
		return
	}
	if _, err := ctx.Session.ChannelMessageSendEmbed(*cfg.ChannelID, embed); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo enviar el registro a %s: %v", *cfg.ChannelID, err), "CMD-Mod")
	}
}

// notifyUser sends embed as a DM, ignoring users with closed DMs
func notifyUser(ctx *discord.CommandContext, userID string, embed *discordgo.MessageEmbed) {
	channel, err := ctx.Session.UserChannelCreate(userID)
	if err == nil {
		_, err = ctx.Session.ChannelMessageSendEmbed(channel.ID, embed)
	}
	if err != nil {
		logger.Debug(fmt.Sprintf("No se pudo enviar un MD a %s: %v", userID, err), "CMD-Mod")
	}
}

func guildName(ctx *discord.CommandContext) string {
	if g := ctx.Guild(); g != nil {
		return g.Name
	}
	return ctx.GuildID()
}
