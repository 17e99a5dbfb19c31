package events

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/errors"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/metrics"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

const (
	colorWelcome = 0x57F287
	colorLeave   = 0xED4245
)

// WelcomeVars are the values substituted into welcome and leave templates
type WelcomeVars struct {
	UserID      string
	Username    string
	Server      string
	MemberCount int
}

// RenderWelcome replaces {user}, {username}, {server} and {memberCount}
func RenderWelcome(template string, v WelcomeVars) string {
	return strings.NewReplacer(
		"{user}", "<@"+v.UserID+">",
		"{username}", v.Username,
		"{server}", v.Server,
		"{memberCount}", strconv.Itoa(v.MemberCount),
	).Replace(template)
}

// JoinRoles returns the roles a new member receives: the welcome role when
// the welcomer is enabled, then the autoroles, without duplicates
func JoinRoles(cfg models.GuildConfig) []string {
	var roles []string
	if cfg.Welcome.Enabled && cfg.Welcome.RoleID != nil && *cfg.Welcome.RoleID != "" {
		roles = append(roles, *cfg.Welcome.RoleID)
	}
	for _, id := range cfg.AutoRoles {
		if id != "" && !slices.Contains(roles, id) {
			roles = append(roles, id)
		}
	}
	return roles
}

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildMemberAdd(onGuildMemberAdd)
	client.EventHandler.OnGuildMemberRemove(onGuildMemberRemove)
}

func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	defer errors.RecoverMiddleware()()

	repos := database.Get()
	if repos == nil || m.User == nil || m.User.Bot {
		return
	}
	metrics.MemberEvents.WithLabelValues("join").Inc()
	logger.Debug(fmt.Sprintf("👋 Nuevo miembro: %s en servidor %s", m.User.Username, m.GuildID), "Member")

	cfg := repos.Guilds.Get(m.GuildID)
	if cfg.Welcome.Enabled && cfg.Welcome.ChannelID != nil && *cfg.Welcome.ChannelID != "" {
		vars := welcomeVars(s, m.GuildID, m.User)
		embed := &discordgo.MessageEmbed{
			Title:       "👋 Benvenuto!",
			Description: RenderWelcome(cfg.Welcome.Message, vars),
			Color:       colorWelcome,
			Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: m.User.AvatarURL("128")},
			Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Membro #%d", vars.MemberCount)},
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		if _, err := s.ChannelMessageSendEmbed(*cfg.Welcome.ChannelID, embed); err != nil {
			logger.Error(fmt.Sprintf("Error enviando mensaje de bienvenida: %v", err), "Member")
		}
	}

	for _, roleID := range JoinRoles(cfg) {
		if err := s.GuildMemberRoleAdd(m.GuildID, m.User.ID, roleID); err != nil {
			logger.Warn(fmt.Sprintf("Error asignando rol %s a %s: %v", roleID, m.User.ID, err), "Member")
		}
	}
}

func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	defer errors.RecoverMiddleware()()

	repos := database.Get()
	if repos == nil || m.User == nil || m.User.Bot {
		return
	}
	metrics.MemberEvents.WithLabelValues("leave").Inc()

	w := repos.Guilds.Get(m.GuildID).Welcome
	if !w.LeaveEnabled || w.ChannelID == nil || *w.ChannelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: "👋 " + RenderWelcome(w.LeaveMessage, welcomeVars(s, m.GuildID, m.User)),
		Color:       colorLeave,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: m.User.AvatarURL("64")},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(*w.ChannelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando mensaje de despedida: %v", err), "Member")
	}
}

// welcomeVars reads the guild name and member count from the state cache,
// falling back to a REST lookup
func welcomeVars(s *discordgo.Session, guildID string, user *discordgo.User) WelcomeVars {
	v := WelcomeVars{UserID: user.ID, Username: user.Username, Server: guildID}

	guild, err := s.State.Guild(guildID)
	if err != nil {
		guild, err = s.GuildWithCounts(guildID)
	}
	if err != nil {
		logger.Debug(fmt.Sprintf("No se pudo obtener el servidor %s: %v", guildID, err), "Member")
		return v
	}

	v.Server = guild.Name
	v.MemberCount = guild.MemberCount
	if v.MemberCount == 0 {
		v.MemberCount = guild.ApproximateMemberCount
	}
	return v
}
