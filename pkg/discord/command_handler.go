package discord

import (
	"fmt"
	"sync"

	"github.com/PancyStudios/ToothlessGo/pkg/config"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// CommandHandler manages command loading and registration
type CommandHandler struct {
	client           *ExtendedClient
	mu               sync.Mutex
	slashCommands    []*discordgo.ApplicationCommand
	slashCommandsDev []*discordgo.ApplicationCommand
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	return &CommandHandler{
		client:           client,
		slashCommands:    make([]*discordgo.ApplicationCommand, 0),
		slashCommandsDev: make([]*discordgo.ApplicationCommand, 0),
	}
}

// LoadCommands logs what was registered programmatically before Start
func (ch *CommandHandler) LoadCommands() error {
	ch.mu.Lock()
	global, dev := len(ch.slashCommands), len(ch.slashCommandsDev)
	ch.mu.Unlock()

	logger.System(fmt.Sprintf("Comandos cargados: %d globales, %d de desarrollo (%d handlers)",
		global, dev, ch.client.Commands.Size()), "CommandHandler")
	return nil
}

// RegisterCommand adds a top-level command to the handler
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)

	if cmd.IsDev {
		ch.AddDevCommand(cmd.ToApplicationCommand())
	} else {
		ch.AddGlobalCommand(cmd.ToApplicationCommand())
	}

	logger.Debug("Comando registrado: "+cmd.Name, "CommandHandler")
}

// BuildCommandGroup creates a command group with subcommands and registers
// each subcommand under "<name>.<sub>". Subcommands keep their own permission
// checks at run time.
func (ch *CommandHandler) BuildCommandGroup(name, description string, subcommands ...*Command) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(subcommands))
	guildOnly := len(subcommands) > 0
	var perms int64
	samePerms := true

	for i, cmd := range subcommands {
		ch.client.Commands.Set(name+"."+cmd.Name, cmd)
		guildOnly = guildOnly && cmd.GuildOnly
		if i == 0 {
			perms = cmd.UserPermissions
		} else if cmd.UserPermissions != perms {
			samePerms = false
		}

		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.Options,
		})
	}

	appCmd := &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options:     options,
	}
	if guildOnly {
		dm := false
		appCmd.DMPermission = &dm
	}
	// Discord only applies default permissions to the top-level command
	if samePerms && perms != 0 {
		appCmd.DefaultMemberPermissions = &perms
	}
	return appCmd
}

// BuildSubcommandGroup creates a subcommand group registered under
// "<group>.<name>.<sub>"
func (ch *CommandHandler) BuildSubcommandGroup(groupName, name, description string, subcommands ...*Command) *discordgo.ApplicationCommandOption {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(subcommands))

	for _, cmd := range subcommands {
		ch.client.Commands.Set(groupName+"."+name+"."+cmd.Name, cmd)

		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.Options,
		})
	}

	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// AddGlobalCommand adds a command to the global command list
func (ch *CommandHandler) AddGlobalCommand(cmd *discordgo.ApplicationCommand) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.slashCommands = append(ch.slashCommands, cmd)
}

// AddDevCommand adds a command to the dev command list
func (ch *CommandHandler) AddDevCommand(cmd *discordgo.ApplicationCommand) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.slashCommandsDev = append(ch.slashCommandsDev, cmd)
}

// GlobalCommands returns a copy of the global command list
func (ch *CommandHandler) GlobalCommands() []*discordgo.ApplicationCommand {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return append([]*discordgo.ApplicationCommand(nil), ch.slashCommands...)
}

// DevCommands returns a copy of the dev command list
func (ch *CommandHandler) DevCommands() []*discordgo.ApplicationCommand {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return append([]*discordgo.ApplicationCommand(nil), ch.slashCommandsDev...)
}

func (ch *CommandHandler) appID() string {
	s := ch.client.Session
	if s != nil && s.State != nil && s.State.User != nil {
		return s.State.User.ID
	}
	if cfg := config.Get(); cfg != nil {
		return cfg.ClientID
	}
	return ""
}

// RegisterCommands overwrites the registered slash commands with the current
// ones: global commands everywhere and dev commands in the dev guild.
// Stale commands are removed by the overwrite.
func (ch *CommandHandler) RegisterCommands() {
	logger.Info("🔄 Registrando comandos globales...", "CommandHandler")
	if err := ch.SyncCommands(""); err != nil {
		logger.Error("Error registrando comandos globales: "+err.Error(), "CommandHandler")
	} else {
		logger.Success("✅ Comandos globales registrados.", "CommandHandler")
	}

	cfg := config.Get()
	if cfg == nil || cfg.DevGuildID == "" || len(ch.DevCommands()) == 0 {
		return
	}

	logger.Info("🔄 Registrando comandos de desarrollo en el servidor "+cfg.DevGuildID+"...", "CommandHandler")
	if err := ch.SyncCommands(cfg.DevGuildID); err != nil {
		logger.Error("Error registrando comandos de desarrollo: "+err.Error(), "CommandHandler")
		return
	}
	logger.Success("✅ Comandos de desarrollo registrados.", "CommandHandler")
}

// SyncCommands replaces the commands of guildID (global when empty) with the
// ones held by the handler
func (ch *CommandHandler) SyncCommands(guildID string) error {
	cmds := ch.GlobalCommands()
	if guildID != "" {
		cmds = ch.DevCommands()
	}

	registered, err := ch.client.Session.ApplicationCommandBulkOverwrite(ch.appID(), guildID, cmds)
	if err != nil {
		return err
	}
	logger.Debug(fmt.Sprintf("%d comandos sincronizados", len(registered)), "CommandHandler")
	return nil
}

// ListGlobalCommands returns the global commands Discord currently knows
func (ch *CommandHandler) ListGlobalCommands() ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.appID(), "")
}

// ListGuildCommands returns the commands registered in guildID
func (ch *CommandHandler) ListGuildCommands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.appID(), guildID)
}

// UnregisterCommands removes all global commands from Discord
func (ch *CommandHandler) UnregisterCommands() error {
	return ch.unregister("")
}

// UnregisterGuildCommands removes all commands registered in guildID
func (ch *CommandHandler) UnregisterGuildCommands(guildID string) error {
	return ch.unregister(guildID)
}

func (ch *CommandHandler) unregister(guildID string) error {
	appID := ch.appID()
	commands, err := ch.client.Session.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		if err := ch.client.Session.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			logger.Error("Error eliminando comando "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	logger.Success(fmt.Sprintf("%d comandos eliminados.", len(commands)), "CommandHandler")
	return nil
}
