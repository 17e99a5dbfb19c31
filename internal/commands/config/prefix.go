package config

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func createPrefixCommand() *discord.Command {
	return discord.NewCommand(
		"prefix",
		"Cambia el prefijo de los comandos de texto",
		"config",
		prefixHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "prefijo",
			Description: "Nuevo prefijo",
			Required:    true,
			MaxLength:   maxPrefixLength,
		},
	)
}

func prefixHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	prefix := ctx.GetStringOption("prefijo")
	if err := ValidatePrefix(prefix); err != nil {
		return common.ReplyError(ctx, fmt.Sprintf("El prefijo debe tener entre 1 y %d caracteres y no contener espacios.", maxPrefixLength))
	}

	repos.Guilds.Set(ctx.GuildID(), models.GuildConfigUpdate{Prefix: &prefix})

	return ctx.ReplyEmbed(common.Embed(
		"✅ Prefijo actualizado",
		fmt.Sprintf("El nuevo prefijo es: `%s`", prefix),
		common.ColorSuccess,
	))
}
