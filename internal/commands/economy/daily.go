package economy

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func createDailyCommand() *discord.Command {
	return discord.NewCommand(
		"daily",
		"🎁 Reclama tu recompensa diaria",
		"economy",
		dailyHandler,
	).InGuild()
}

func dailyHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}
	eco, ok := settings(ctx, repos)
	if !ok {
		return nil
	}

	p := ClaimDaily(repos, ctx.GuildID(), ctx.User().ID, time.Now(), rand.IntN)
	if !p.Claimed {
		return ctx.ReplyEphemeralEmbed(common.Embed(
			"⏰ Cooldown activo",
			fmt.Sprintf("Podrás reclamar tu recompensa diaria en **%s**", common.FormatDuration(p.Remaining)),
			common.ColorError,
		))
	}

	embed := common.Embed(
		"🎁 ¡Recompensa diaria!",
		fmt.Sprintf("Has recibido **%s** %s", common.FormatAmount(p.Amount), eco.Currency),
		common.ColorSuccess,
	)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Nuevo saldo", common.Money(p.Account.Wallet, eco.Currency), true),
	}
	embed.Footer.Text = "¡Vuelve mañana por otra recompensa!"
	return ctx.ReplyEmbed(embed)
}
