package dev

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func createGiveCommand() *discord.Command {
	return discord.NewCommand(
		"give",
		"Suma o resta monedas de la cartera",
		"dev",
		giveHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "cantidad",
			Description: "Cantidad (negativa para restar)",
			Required:    true,
		},
	)
}

// Adjust adds delta to the wallet without letting it go below zero
func Adjust(account *models.EconomyAccount, delta int64) {
	account.Wallet = max(0, account.Wallet+delta)
}

func giveHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario.")
	}
	delta := ctx.GetIntOption("cantidad")

	account, err := repos.Economy.Update(ctx.GuildID(), user.ID, func(a *models.EconomyAccount) error {
		Adjust(a, delta)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Warn(fmt.Sprintf("%s ajustó la cartera de %s en %d", ctx.User().ID, user.ID, delta), "CMD-Dev")
	return ctx.ReplyEphemeral(fmt.Sprintf("💰 Cartera de **%s**: %s", user.Username, common.Money(account.Wallet, "")))
}

func createResetAccountCommand() *discord.Command {
	return discord.NewCommand(
		"reset",
		"Vacía la cuenta de un usuario",
		"dev",
		resetAccountHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario",
			Required:    true,
		},
	)
}

func resetAccountHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario.")
	}

	repos.Economy.Set(ctx.GuildID(), user.ID, models.NewEconomyAccount())
	logger.Warn(fmt.Sprintf("%s vació la cuenta de %s en %s", ctx.User().ID, user.ID, ctx.GuildID()), "CMD-Dev")
	return ctx.ReplyEphemeral(fmt.Sprintf("🧹 Cuenta de **%s** vaciada.", user.Username))
}
