package levels

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func createRankCommand() *discord.Command {
	return discord.NewCommand(
		"rank",
		"⭐ Muestra tu nivel o el de otro usuario",
		"levels",
		rankHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar",
		},
	).InGuild()
}

func rankHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}
	if !repos.Guilds.Get(ctx.GuildID()).Levels.Enabled {
		return common.ReplyError(ctx, "El sistema de niveles está desactivado en este servidor.")
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		user = ctx.User()
	}

	progress := repos.Levels.Get(ctx.GuildID(), user.ID)
	needed := models.XPForNextLevel(progress.Level)

	position := "Sin clasificar"
	if rank := repos.Levels.Rank(ctx.GuildID(), user.ID); rank > 0 {
		position = fmt.Sprintf("#%d", rank)
	}

	embed := common.Embed(fmt.Sprintf("⭐ Nivel de %s", user.Username), "", common.ColorGold)
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("")}
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Nivel", fmt.Sprintf("%d", progress.Level), true),
		common.Field("Posición", position, true),
		common.Field("XP total", common.FormatAmount(progress.TotalXP), true),
		common.Field(fmt.Sprintf("Progreso (%d/%d)", progress.XP, needed), ProgressBar(progress.XP, needed), false),
	}
	return ctx.ReplyEmbed(embed)
}
