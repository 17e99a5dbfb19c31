package events

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/errors"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/metrics"
	"github.com/bwmarrin/discordgo"
)

var xpTracker = NewXPTracker(xpTrackerSize, XPCooldown)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnMessageCreate(onMessageCreate)
}

func onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer errors.RecoverMiddleware()()

	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	if s.State != nil && mentionsUser(m.Message, s.State.User) {
		replyToMention(s, m)
	}

	repos := database.Get()
	if repos == nil {
		return
	}

	grant := GrantMessageXP(repos, xpTracker, m.GuildID, m.Author.ID, time.Now(), rand.IntN)
	if !grant.Granted {
		return
	}
	metrics.XPAwarded.WithLabelValues(strconv.FormatBool(grant.LeveledUp)).Inc()
	if !grant.LeveledUp {
		return
	}

	channelID := m.ChannelID
	if id := grant.Settings.AnnounceChannelID; id != nil && *id != "" {
		channelID = *id
	}
	embed := &discordgo.MessageEmbed{
		Title:       "⭐ Level Up!",
		Description: fmt.Sprintf("¡<@%s> ha subido al nivel **%d**!", m.Author.ID, grant.Progress.Level),
		Color:       0xFFD700,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: m.Author.AvatarURL("128")},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Warn(fmt.Sprintf("Error anunciando subida de nivel en %s: %v", channelID, err), "Message")
	}
}

func mentionsUser(m *discordgo.Message, user *discordgo.User) bool {
	if user == nil {
		return false
	}
	for _, mention := range m.Mentions {
		if mention.ID == user.ID {
			return true
		}
	}
	return false
}

func replyToMention(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed := &discordgo.MessageEmbed{
		Title:       "👋 ¡Hola!",
		Description: "Usa comandos **slash (/)** para interactuar conmigo.\nEscribe `/help` para ver todos los comandos disponibles.",
		Color:       0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "⚙️ Configuración", Value: "`/config` - Ajustes del servidor", Inline: true},
			{Name: "🛡️ Moderación", Value: "`/mod` - Comandos de moderación", Inline: true},
			{Name: "⭐ Niveles", Value: "`/rank` - Tu nivel", Inline: true},
		},
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando respuesta: %v", err), "Message")
	}
}
