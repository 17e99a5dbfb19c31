package fun

import (
	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
)

func createCoinflipCommand() *discord.Command {
	return discord.NewCommand(
		"coinflip",
		"🪙 Lanza una moneda",
		"fun",
		coinflipHandler,
	)
}

func coinflipHandler(ctx *discord.CommandContext) error {
	return ctx.ReplyEmbed(common.Embed("🪙 Moneda", "Ha salido **"+FlipCoin(rnd)+"**", common.ColorFun))
}
