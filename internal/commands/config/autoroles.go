package config

import (
	"errors"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func createAutoRolesCommand() *discord.Command {
	return discord.NewCommand(
		"autoroles",
		"Gestiona los roles que se asignan al entrar",
		"config",
		autoRolesHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "accion",
			Description: "Qué hacer",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Añadir", Value: ActionAdd},
				{Name: "Quitar", Value: ActionRemove},
				{Name: "Vaciar", Value: ActionClear},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol a añadir o quitar",
		},
	)
}

// configLockKey serializes read-modify-write sequences on one guild's config
func configLockKey(guildID string) string {
	return database.LockKey(database.DocGuilds, guildID)
}

func autoRolesHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}

	action := ctx.GetStringOption("accion")
	roleID := ctx.GetSnowflakeOption("rol")
	if action != ActionClear && roleID == "" {
		return common.ReplyError(ctx, "Debes indicar un rol.")
	}

	unlock := repos.Store.Locks.Lock(configLockKey(ctx.GuildID()))
	defer unlock()

	current := repos.Guilds.Get(ctx.GuildID()).AutoRoles
	roles, err := EditAutoRoles(current, action, roleID)
	switch {
	case errors.Is(err, ErrRoleExists):
		return common.ReplyError(ctx, "Ese rol ya es un autorol.")
	case errors.Is(err, ErrRoleMissing):
		return common.ReplyError(ctx, "Ese rol no es un autorol.")
	case errors.Is(err, ErrTooManyRoles):
		return common.ReplyError(ctx, "Se alcanzó el máximo de autoroles.")
	case err != nil:
		return common.ReplyError(ctx, "Acción desconocida.")
	}

	cfg := repos.Guilds.Set(ctx.GuildID(), models.GuildConfigUpdate{AutoRoles: roles})

	return ctx.ReplyEmbed(common.Embed("🎭 Autoroles actualizados", RoleList(cfg.AutoRoles), common.ColorSuccess))
}
