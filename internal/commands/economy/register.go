package economy

import (
	"errors"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

// RegisterEconomyCommands registers every economy command as a top-level command
func RegisterEconomyCommands(client *discord.ExtendedClient) {
	for _, cmd := range []*discord.Command{
		createBalanceCommand(),
		createDailyCommand(),
		createWorkCommand(),
		createDepositCommand(),
		createWithdrawCommand(),
		createPayCommand(),
	} {
		client.CommandHandler.RegisterCommand(cmd)
	}
}

// settings returns the guild economy settings, answering the interaction
// when the economy is disabled
func settings(ctx *discord.CommandContext, repos *database.Repositories) (models.EconomySettings, bool) {
	cfg := repos.Guilds.Get(ctx.GuildID())
	if !cfg.Economy.Enabled {
		_ = common.ReplyError(ctx, "La economía está desactivada en este servidor.")
		return cfg.Economy, false
	}
	return cfg.Economy, true
}

// replyBalanceError answers with the message matching a ledger error
func replyBalanceError(ctx *discord.CommandContext, err error) error {
	switch {
	case errors.Is(err, database.ErrInvalidAmount):
		return common.ReplyError(ctx, "La cantidad debe ser mayor que cero.")
	case errors.Is(err, database.ErrInsufficientFunds):
		return common.ReplyError(ctx, "No tienes fondos suficientes.")
	case errors.Is(err, database.ErrSameAccount):
		return common.ReplyError(ctx, "No puedes transferirte monedas a ti mismo.")
	}
	return err
}
