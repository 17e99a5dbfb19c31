package economy

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func createPayCommand() *discord.Command {
	return discord.NewCommand(
		"pay",
		"💸 Envía monedas de tu cartera a otro usuario",
		"economy",
		payHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario que recibe las monedas",
			Required:    true,
		},
		amountOption("Cantidad a enviar"),
	).InGuild()
}

func payHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}
	eco, ok := settings(ctx, repos)
	if !ok {
		return nil
	}

	target := ctx.GetUserOption("usuario")
	if target == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario.")
	}
	if target.Bot {
		return common.ReplyError(ctx, "No puedes enviar monedas a un bot.")
	}

	amount := ctx.GetIntOption("cantidad")
	from, _, err := repos.Economy.Transfer(ctx.GuildID(), ctx.User().ID, target.ID, amount)
	if err != nil {
		return replyBalanceError(ctx, err)
	}

	embed := common.Embed("💸 Transferencia completada",
		fmt.Sprintf("<@%s> envió **%s** %s a <@%s>",
			ctx.User().ID, common.FormatAmount(amount), eco.Currency, target.ID),
		common.ColorSuccess)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("Tu nueva cartera", common.Money(from.Wallet, eco.Currency), true),
	}
	return ctx.ReplyEmbed(embed)
}
