package config

import (
	"errors"
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func xpOption(name, description string) *discordgo.ApplicationCommandOption {
	lo := float64(minXP)
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		MinValue:    &lo,
		MaxValue:    maxXP,
	}
}

func createLevelsCommand() *discord.Command {
	return discord.NewCommand(
		"levels",
		"Configura el sistema de niveles",
		"config",
		levelsHandler,
	).WithOptions(
		enabledOption(),
		channelOption("canal", "Canal de anuncios de nivel", discordgo.ChannelTypeGuildText),
		xpOption("xp_min", "XP mínima por mensaje"),
		xpOption("xp_max", "XP máxima por mensaje"),
	)
}

func levelsHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	unlock := repos.Store.Locks.Lock(configLockKey(ctx.GuildID()))
	defer unlock()

	current := repos.Guilds.Get(ctx.GuildID()).Levels
	patch, err := LevelsPatch(current,
		ctx.GetBoolOption("activado"),
		ctx.GetSnowflakeOption("canal"),
		ctx.GetIntOption("xp_min"),
		ctx.GetIntOption("xp_max"),
	)
	if errors.Is(err, ErrXPRange) {
		return common.ReplyError(ctx, "La XP mínima no puede ser mayor que la máxima.")
	}

	cfg, err := repos.Guilds.Patch(ctx.GuildID(), models.SectionLevels, patch)
	if err != nil {
		return replyPatchError(ctx, err)
	}

	embed := common.Embed("⭐ Niveles configurados", "", common.ColorGold)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Estado", common.Status(cfg.Levels.Enabled), true),
		common.Field("Canal de anuncios", common.ChannelMention(cfg.Levels.AnnounceChannelID), true),
		common.Field("XP por mensaje", fmt.Sprintf("%d - %d", cfg.Levels.XPMin, cfg.Levels.XPMax), true),
	}
	return ctx.ReplyEmbed(embed)
}
