// Package discord provides the Discord bot client and related structures.
// It wraps discordgo with additional functionality for command and event handling.
package discord

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/config"
	"github.com/PancyStudios/ToothlessGo/pkg/errors"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/metrics"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// discordgo.Logger is a function, not an interface
func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			logger.Error(msg, "DiscordGo")
		case discordgo.LogWarning:
			logger.Warn(msg, "DiscordGo")
		case discordgo.LogDebug:
			logger.Debug(msg, "DiscordGo")
		default:
			logger.Info(msg, "DiscordGo")
		}
	}
}

// ExtendedClient wraps discordgo.Session with additional functionality
type ExtendedClient struct {
	Session        *discordgo.Session
	Commands       *CommandCollection
	CommandHandler *CommandHandler
	EventHandler   *EventHandler
	StartTime      time.Time
	mu             sync.RWMutex
	isReady        bool
}

// CommandCollection holds registered commands keyed by their full name
// ("mod.warn", "config.view", ...)
type CommandCollection struct {
	commands map[string]*Command
	mu       sync.RWMutex
}

// NewCommandCollection creates a new CommandCollection
func NewCommandCollection() *CommandCollection {
	return &CommandCollection{
		commands: make(map[string]*Command),
	}
}

// Set adds or updates a command
func (cc *CommandCollection) Set(name string, cmd *Command) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.commands[name] = cmd
}

// Get retrieves a command by name
func (cc *CommandCollection) Get(name string) (*Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	cmd, ok := cc.commands[name]
	return cmd, ok
}

// Size returns the number of commands
func (cc *CommandCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.commands)
}

// All returns all commands
func (cc *CommandCollection) All() map[string]*Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	result := make(map[string]*Command, len(cc.commands))
	for k, v := range cc.commands {
		result[k] = v
	}
	return result
}

// Names returns every registered full name, sorted
func (cc *CommandCollection) Names() []string {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	names := make([]string, 0, len(cc.commands))
	for name := range cc.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByCategory counts the registered commands of each category
func (cc *CommandCollection) ByCategory() map[string]int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	counts := make(map[string]int)
	for _, cmd := range cc.commands {
		counts[cmd.Category]++
	}
	return counts
}

var (
	client *ExtendedClient
	once   sync.Once
)

// Init initializes the global Discord client
func Init(token string) (*ExtendedClient, error) {
	var err error
	once.Do(func() {
		client, err = NewClient(token)
	})
	return client, err
}

// Get returns the global Discord client
func Get() *ExtendedClient {
	return client
}

// NewClient creates a new ExtendedClient
func NewClient(token string) (*ExtendedClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers

	session.ShardCount = 1
	session.SyncEvents = false
	session.StateEnabled = true
	session.LogLevel = discordgo.LogWarning

	c := &ExtendedClient{
		Session:  session,
		Commands: NewCommandCollection(),
		isReady:  false,
	}

	c.CommandHandler = NewCommandHandler(c)
	c.EventHandler = NewEventHandler(c)

	return c, nil
}

// Start registers the internal handlers and opens the gateway connection
func (c *ExtendedClient) Start() error {
	if err := c.CommandHandler.LoadCommands(); err != nil {
		logger.Error("Error cargando comandos: "+err.Error(), "Client")
		return err
	}

	if err := c.EventHandler.LoadEvents(); err != nil {
		logger.Error("Error cargando eventos: "+err.Error(), "Client")
		return err
	}

	c.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()

		logger.Success("Bot conectado como: "+r.User.Username, "Client")

		c.CommandHandler.RegisterCommands()
	})

	c.Session.AddHandler(func(s *discordgo.Session, d *discordgo.Disconnect) {
		c.mu.Lock()
		c.isReady = false
		c.mu.Unlock()
		logger.Warn("Desconectado del gateway", "Client")
	})

	c.Session.AddHandler(c.handleInteraction)

	c.StartTime = time.Now()

	return c.Session.Open()
}

// resolveCommandName builds the full name of an invoked (sub)command
func resolveCommandName(data discordgo.ApplicationCommandInteractionData) string {
	name := data.Name
	if len(data.Options) == 0 {
		return name
	}

	opt := data.Options[0]
	switch opt.Type {
	case discordgo.ApplicationCommandOptionSubCommandGroup:
		if len(opt.Options) > 0 {
			return name + "." + opt.Name + "." + opt.Options[0].Name
		}
	case discordgo.ApplicationCommandOptionSubCommand:
		return name + "." + opt.Name
	}
	return name
}

// handleInteraction handles incoming Discord interactions
func (c *ExtendedClient) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer errors.RecoverMiddleware()()

	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		cmd, ok := c.Commands.Get(resolveCommandName(i.ApplicationCommandData()))
		if !ok || cmd.AutoComplete == nil {
			return
		}
		cmd.AutoComplete(&CommandContext{Session: s, Interaction: i, Client: c})

	case discordgo.InteractionApplicationCommand:
		commandName := resolveCommandName(i.ApplicationCommandData())
		cmd, ok := c.Commands.Get(commandName)
		if !ok {
			logger.Warn("Comando no encontrado: "+commandName, "Client")
			return
		}

		ctx := &CommandContext{Session: s, Interaction: i, Client: c}

		if cmd.GuildOnly && i.GuildID == "" {
			_ = ctx.ReplyEphemeral("❌ Este comando solo se puede usar en un servidor.")
			metrics.CommandsExecuted.WithLabelValues(commandName, metrics.ResultError).Inc()
			return
		}

		if !cmd.Allowed(ctx.Member()) {
			_ = ctx.ReplyEphemeral("❌ No tienes permisos para usar este comando.")
			metrics.CommandsExecuted.WithLabelValues(commandName, metrics.ResultError).Inc()
			return
		}

		if err := cmd.Run(ctx); err != nil {
			metrics.CommandsExecuted.WithLabelValues(commandName, metrics.ResultError).Inc()
			logger.Error("Error ejecutando el comando "+commandName+": "+err.Error(), "Client")
			return
		}
		metrics.CommandsExecuted.WithLabelValues(commandName, metrics.ResultOK).Inc()
	}
}

// Stop stops the bot and closes the session
func (c *ExtendedClient) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()

	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// IsReady returns true if the bot is ready
func (c *ExtendedClient) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// GuildCount returns the number of guilds the bot is in
func (c *ExtendedClient) GuildCount() int {
	if c.Session == nil || c.Session.State == nil {
		return 0
	}
	c.Session.State.RLock()
	defer c.Session.State.RUnlock()
	return len(c.Session.State.Guilds)
}

// Uptime returns how long the bot has been running
func (c *ExtendedClient) Uptime() time.Duration {
	if c.StartTime.IsZero() {
		return 0
	}
	return time.Since(c.StartTime)
}

// BotInfo summarizes the bot for the dashboard
func (c *ExtendedClient) BotInfo() models.BotInfo {
	info := models.BotInfo{
		Guilds:   c.GuildCount(),
		Ready:    c.IsReady(),
		Commands: c.Commands.ByCategory(),
		Uptime:   int64(c.Uptime().Seconds()),
	}

	if c.Session != nil && c.Session.State != nil && c.Session.State.User != nil {
		user := c.Session.State.User
		info.ID = user.ID
		info.Username = user.Username
		info.Avatar = user.AvatarURL("")
	}
	return info
}

// GuildInfo describes a cached guild for the dashboard. It reports false
// when the bot is not in the guild.
func (c *ExtendedClient) GuildInfo(guildID string) (models.GuildInfo, bool) {
	if c.Session == nil || c.Session.State == nil {
		return models.GuildInfo{}, false
	}
	guild, err := c.Session.State.Guild(guildID)
	if err != nil {
		return models.GuildInfo{}, false
	}
	return guildInfoFrom(c.Session.State, guild), true
}

func guildInfoFrom(state *discordgo.State, guild *discordgo.Guild) models.GuildInfo {
	state.RLock()
	defer state.RUnlock()

	info := models.GuildInfo{
		ID:          guild.ID,
		Name:        guild.Name,
		Icon:        guild.IconURL(""),
		MemberCount: guild.MemberCount,
		Channels:    []models.GuildChannel{},
		Categories:  []models.GuildChannel{},
		Roles:       []models.GuildRole{},
	}

	for _, ch := range guild.Channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
			info.Channels = append(info.Channels, models.GuildChannel{ID: ch.ID, Name: ch.Name})
		case discordgo.ChannelTypeGuildCategory:
			info.Categories = append(info.Categories, models.GuildChannel{ID: ch.ID, Name: ch.Name})
		}
	}

	for _, role := range guild.Roles {
		// @everyone shares the guild id
		if role.ID == guild.ID || role.Managed {
			continue
		}
		info.Roles = append(info.Roles, models.GuildRole{ID: role.ID, Name: role.Name, Color: fmt.Sprintf("#%06x", role.Color)})
	}
	sort.Slice(info.Roles, func(i, j int) bool { return info.Roles[i].Name < info.Roles[j].Name })

	return info
}

// GetConfig returns the bot configuration
func (c *ExtendedClient) GetConfig() *config.Config {
	return config.Get()
}
