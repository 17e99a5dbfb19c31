package mod

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand creates the /mod warns subcommand
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warns",
		"Lista de advertencias de un usuario",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "[STAFF] Usuario a buscar (opcional)",
			Required:    false,
		},
	).InGuild()
}

func warningsHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	isModerator := canModerate(ctx.Member())
	target := ctx.GetUserOption("usuario")
	if target == nil {
		target = ctx.User()
	}
	if target.ID != ctx.User().ID && !isModerator {
		return common.ReplyError(ctx, "No tienes permisos para ver la lista de advertencias de otro usuario.")
	}

	warnings := repos.Warns.Get(ctx.GuildID(), target.ID)
	title := fmt.Sprintf("🔖 Advertencias de %s", target.Username)

	if len(warnings) == 0 {
		return ctx.ReplyEphemeralEmbed(common.Embed(title,
			"No se han encontrado advertencias del usuario en este servidor.", common.ColorSuccess))
	}

	embed := common.Embed(title, WarnLines(warnings, isModerator), colorWarn)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("💫 Cantidad", fmt.Sprintf("%d", len(warnings)), true),
	}
	return ctx.ReplyEphemeralEmbed(embed)
}

// WarnLines renders warnings for an embed description. Moderators are
// hidden from regular members.
func WarnLines(warnings []models.Warning, showModerator bool) string {
	var b strings.Builder
	for _, w := range warnings {
		moderator := "Oculto"
		if showModerator {
			moderator = "<@" + w.Moderator + ">"
		}
		fmt.Fprintf(&b, "> **ID:** `%d`\n> **Razón:** %s\n> **Moderador:** %s\n> **Fecha:** %s\n\n",
			w.ID, w.Reason, moderator, discordTimestamp(w.Timestamp))
	}
	return strings.TrimSuffix(b.String(), "\n\n")
}

func discordTimestamp(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}
