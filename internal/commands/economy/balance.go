package economy

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func createBalanceCommand() *discord.Command {
	return discord.NewCommand(
		"balance",
		"💰 Consulta tu saldo o el de otro usuario",
		"economy",
		balanceHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar",
			Required:    false,
		},
	).InGuild()
}

func balanceHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}
	eco, ok := settings(ctx, repos)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		user = ctx.User()
	}

	account := repos.Economy.Get(ctx.GuildID(), user.ID)

	embed := common.Embed(fmt.Sprintf("💰 Saldo de %s", user.Username), "", common.ColorGold)
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("")}
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("💵 Cartera", common.Money(account.Wallet, eco.Currency), true),
		common.Field("🏦 Banco", common.Money(account.Bank, eco.Currency), true),
		common.Field("📊 Total", common.Money(account.Total(), eco.Currency), true),
	}
	return ctx.ReplyEmbed(embed)
}
