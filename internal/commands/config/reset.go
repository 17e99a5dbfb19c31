package config

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
)

func createResetCommand() *discord.Command {
	return discord.NewCommand(
		"reset",
		"Restablece toda la configuración",
		"config",
		resetHandler,
	)
}

func resetHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	repos.Guilds.Reset(ctx.GuildID())
	logger.Info(fmt.Sprintf("Configuración de %s restablecida por %s", ctx.GuildID(), ctx.User().ID), "CMD-Config")

	return ctx.ReplyEmbed(common.Embed(
		"🔄 Configuración restablecida",
		"Todos los ajustes volvieron a sus valores predeterminados.",
		common.ColorSuccess,
	))
}
