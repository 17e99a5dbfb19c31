package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// maxTimeout is the longest timeout Discord accepts
const maxTimeout = 28 * 24 * time.Hour

// createMuteCommand creates the /mod mute subcommand
func createMuteCommand() *discord.Command {
	minMinutes := 1.0
	return discord.NewCommand(
		"mute",
		"Silencia a un usuario temporalmente",
		"mod",
		muteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a silenciar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "duracion",
			Description: "Duración en minutos",
			Required:    true,
			MinValue:    &minMinutes,
			MaxValue:    maxTimeout.Minutes(),
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del silencio",
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers).
		InGuild()
}

// TimeoutUntil returns the end of a timeout of the given minutes, capped at
// the Discord maximum
func TimeoutUntil(now time.Time, minutes int64) time.Time {
	d := time.Duration(minutes) * time.Minute
	if d > maxTimeout {
		d = maxTimeout
	}
	return now.Add(d)
}

func muteHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return common.ReplyError(ctx, "Debes especificar un usuario.")
	}
	minutes := ctx.GetIntOption("duracion")
	if minutes < 1 {
		return common.ReplyError(ctx, "La duración debe ser al menos 1 minuto.")
	}
	reason := reasonOr(ctx.GetStringOption("razon"))

	until := TimeoutUntil(time.Now(), minutes)
	if err := ctx.Session.GuildMemberTimeout(ctx.GuildID(), user.ID, &until); err != nil {
		return common.ReplyError(ctx, fmt.Sprintf("Error al silenciar: %v", err))
	}

	if err := ctx.Reply(fmt.Sprintf("🔇 **%s** ha sido silenciado hasta <t:%d:f>.\n**Razón:** %s",
		user.Username, until.Unix(), reason)); err != nil {
		return err
	}
	postLog(ctx, repos, LogEmbed("Silencio", user.ID, ctx.User().ID, fmt.Sprintf("%s (%s)", reason, common.FormatDuration(time.Until(until)))))
	return nil
}
