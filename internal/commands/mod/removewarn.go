package mod

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/errors"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

const maxChoiceName = 100

// createRemoveWarnCommand creates the /mod removewarn subcommand
func createRemoveWarnCommand() *discord.Command {
	return discord.NewCommand(
		"removewarn",
		"Elimina una advertencia específica de un usuario",
		"mod",
		removeWarnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario del cual eliminar la advertencia",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "id",
			Description:  "ID de la advertencia a eliminar",
			Required:     true,
			Autocomplete: true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithAutoComplete(removeWarnAutoComplete).
		InGuild()
}

func removeWarnHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario válido.")
	}
	id, err := ParseWarnID(ctx.GetStringOption("id"))
	if err != nil {
		return common.ReplyError(ctx, "El ID de la advertencia no es válido.")
	}

	removed, found := findWarning(repos.Warns.Get(ctx.GuildID(), user.ID), id)
	if !found || !repos.Warns.Remove(ctx.GuildID(), user.ID, id) {
		return common.ReplyError(ctx, "No se encontró una advertencia con ese ID.")
	}

	embed := common.Embed("✅ Advertencia eliminada",
		fmt.Sprintf("La advertencia de **%s** ha sido eliminada.\n\n**Razón original:** %s\n**ID:** `%d`",
			user.Username, removed.Reason, id), common.ColorSuccess)
	if err := ctx.ReplyEmbed(embed); err != nil {
		return err
	}

	notifyUser(ctx, user.ID, common.Embed("ℹ️ Advertencia eliminada",
		fmt.Sprintf("**Servidor:** %s\n**Advertencia eliminada:** %s", guildName(ctx), removed.Reason), common.ColorSuccess))
	postLog(ctx, repos, LogEmbed("Advertencia eliminada", user.ID, ctx.User().ID, removed.Reason))
	return nil
}

func removeWarnAutoComplete(ctx *discord.CommandContext) {
	defer errors.RecoverMiddleware()()

	repos := database.Get()
	userID := ctx.GetSnowflakeOption("usuario")
	if repos == nil || userID == "" {
		_ = ctx.SendAutoCompleteChoices(nil)
		return
	}

	_ = ctx.SendAutoCompleteChoices(WarnChoices(repos.Warns.Get(ctx.GuildID(), userID)))
}

// ParseWarnID parses a warning id typed or picked by the user
func ParseWarnID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// WarnChoices builds autocomplete choices for warnings, newest first
func WarnChoices(warnings []models.Warning) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(warnings), 25))
	for i := len(warnings) - 1; i >= 0 && len(choices) < 25; i-- {
		w := warnings[i]
		name := fmt.Sprintf("ID: %d - Razón: %s", w.ID, w.Reason)
		if r := []rune(name); len(r) > maxChoiceName {
			name = string(r[:maxChoiceName-3]) + "..."
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: strconv.FormatInt(w.ID, 10),
		})
	}
	return choices
}

func findWarning(warnings []models.Warning, id int64) (models.Warning, bool) {
	for _, w := range warnings {
		if w.ID == id {
			return w, true
		}
	}
	return models.Warning{}, false
}
