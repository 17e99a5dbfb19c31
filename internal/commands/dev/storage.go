package dev

import (
	"fmt"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
	"github.com/goccy/go-json"
)

// maxCodeBlock keeps dumps inside an embed description
const maxCodeBlock = 4000

func createFlushCommand() *discord.Command {
	return discord.NewCommand(
		"flush",
		"Persiste de nuevo todos los documentos",
		"dev",
		flushHandler,
	)
}

func flushHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}
	if err := repos.Store.Flush(); err != nil {
		logger.Error("Error en flush manual: "+err.Error(), "CMD-Dev")
		return common.ReplyError(ctx, fmt.Sprintf("Error al persistir: `%v`", err))
	}
	return ctx.ReplyEphemeral("💾 Documentos persistidos.")
}

func createSyncCommand() *discord.Command {
	return discord.NewCommand(
		"sync",
		"Vuelve a registrar los comandos slash",
		"dev",
		syncHandler,
	)
}

func syncHandler(ctx *discord.CommandContext) error {
	if err := ctx.Defer(); err != nil {
		return err
	}
	ctx.Client.CommandHandler.RegisterCommands()
	return ctx.EditReply(fmt.Sprintf("🔄 %d comandos globales y %d de desarrollo sincronizados.",
		len(ctx.Client.CommandHandler.GlobalCommands()), len(ctx.Client.CommandHandler.DevCommands())))
}

func createConfigDumpCommand() *discord.Command {
	return discord.NewCommand(
		"config",
		"Muestra la configuración guardada de un servidor",
		"dev",
		configDumpHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "servidor",
			Description: "ID del servidor (por defecto, este)",
		},
	)
}

func configDumpHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	guildID := ctx.GetStringOption("servidor")
	if guildID == "" {
		guildID = ctx.GuildID()
	}
	if !repos.Guilds.Exists(guildID) {
		return common.ReplyError(ctx, "No hay configuración guardada para ese servidor.")
	}

	raw, err := json.MarshalIndent(repos.Guilds.Get(guildID), "", "  ")
	if err != nil {
		return err
	}
	return ctx.ReplyEphemeralEmbed(common.Embed("🗂️ "+guildID, CodeBlock(raw), common.ColorInfo))
}

// CodeBlock wraps raw JSON in a code block, truncating long documents
func CodeBlock(raw []byte) string {
	body := string(raw)
	if len(body) > maxCodeBlock {
		body = body[:maxCodeBlock] + "\n..."
	}
	return "```json\n" + body + "\n```"
}
