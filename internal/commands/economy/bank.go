package economy

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func amountOption(description string) *discordgo.ApplicationCommandOption {
	minValue := 1.0
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "cantidad",
		Description: description,
		Required:    true,
		MinValue:    &minValue,
	}
}

func createDepositCommand() *discord.Command {
	return discord.NewCommand(
		"deposit",
		"🏦 Deposita monedas de tu cartera en el banco",
		"economy",
		bankHandler(Deposit, "🏦 Depósito realizado", "Has depositado"),
	).WithOptions(amountOption("Cantidad a depositar")).InGuild()
}

func createWithdrawCommand() *discord.Command {
	return discord.NewCommand(
		"withdraw",
		"💵 Retira monedas del banco a tu cartera",
		"economy",
		bankHandler(Withdraw, "💵 Retiro realizado", "Has retirado"),
	).WithOptions(amountOption("Cantidad a retirar")).InGuild()
}

type bankOp func(repos *database.Repositories, guildID, userID string, amount int64) (models.EconomyAccount, error)

func bankHandler(op bankOp, title, verb string) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		repos, ok := common.Repos(ctx)
		if !ok {
			return nil
		}
		eco, ok := settings(ctx, repos)
		if !ok {
			return nil
		}

		amount := ctx.GetIntOption("cantidad")
		account, err := op(repos, ctx.GuildID(), ctx.User().ID, amount)
		if err != nil {
			return replyBalanceError(ctx, err)
		}

		embed := common.Embed(title,
			fmt.Sprintf("%s **%s** %s", verb, common.FormatAmount(amount), eco.Currency),
			common.ColorSuccess)
		embed.Fields = []*discordgo.MessageEmbedField{
			common.Field("💵 Cartera", common.Money(account.Wallet, eco.Currency), true),
			common.Field("🏦 Banco", common.Money(account.Bank, eco.Currency), true),
		}
		return ctx.ReplyEmbed(embed)
	}
}
