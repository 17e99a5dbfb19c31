package economy

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func createWorkCommand() *discord.Command {
	return discord.NewCommand(
		"work",
		"💼 Trabaja para ganar monedas",
		"economy",
		workHandler,
	).InGuild()
}

func workHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}
	eco, ok := settings(ctx, repos)
	if !ok {
		return nil
	}

	p := Work(repos, ctx.GuildID(), ctx.User().ID, time.Now(), rand.IntN)
	if !p.Claimed {
		return ctx.ReplyEphemeralEmbed(common.Embed(
			"⏰ ¡Estás cansado!",
			fmt.Sprintf("Podrás volver a trabajar en **%s**", common.FormatDuration(p.Remaining)),
			common.ColorError,
		))
	}

	embed := common.Embed(
		"💼 ¡Trabajo completado!",
		fmt.Sprintf("%s Trabajaste como **%s** y ganaste **%s** %s",
			p.Job.Emoji, p.Job.Name, common.FormatAmount(p.Amount), eco.Currency),
		common.ColorSuccess,
	)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Nuevo saldo", common.Money(p.Account.Wallet, eco.Currency), true),
	}
	embed.Footer.Text = "Podrás volver a trabajar en 1 hora"
	return ctx.ReplyEmbed(embed)
}
