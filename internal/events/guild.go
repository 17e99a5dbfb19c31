package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/errors"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// freshJoin is how recent JoinedAt must be for a GuildCreate to count as a
// new invite rather than a reconnect
const freshJoin = 10 * time.Second

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildCreate(onGuildCreate)
	client.EventHandler.OnGuildDelete(onGuildDelete)
}

// onGuildCreate is called for every available guild on connect and when the
// bot is invited. It makes sure the guild has a stored configuration.
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	defer errors.RecoverMiddleware()()

	repos := database.Get()
	if repos != nil && !repos.Guilds.Exists(g.ID) {
		repos.Guilds.Get(g.ID)
		logger.Debug(fmt.Sprintf("Configuración por defecto creada para %s", g.ID), "Guild")
	}

	if !IsFreshJoin(g.JoinedAt, time.Now()) {
		return
	}

	logger.Info(fmt.Sprintf("➕ Bot agregado a servidor: %s (ID: %s)", g.Name, g.ID), "Guild")
	logger.Debug(fmt.Sprintf("   Miembros: %d | Canales: %d", g.MemberCount, len(g.Channels)), "Guild")

	if g.SystemChannelID == "" {
		return
	}
	embed := &discordgo.MessageEmbed{
		Title:       "¡Gracias por agregarme! 🎉",
		Description: "Hola, soy **Toothless**. Usa `/help` para ver todos mis comandos.",
		Color:       0x57F287,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "⚙️ Configuración", Value: "Usa `/config view`", Inline: true},
			{Name: "🛡️ Moderación", Value: "Usa `/mod` para moderar", Inline: true},
			{Name: "💰 Economía", Value: "Empieza con `/daily`", Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "🐉 Toothless"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(g.SystemChannelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando mensaje de bienvenida: %v", err), "Guild")
	}
}

func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	// Unavailable guilds come back; only a real removal is logged
	if g.Unavailable {
		return
	}
	logger.Info(fmt.Sprintf("➖ Bot removido del servidor ID: %s", g.ID), "Guild")
}

// IsFreshJoin reports whether joinedAt is recent enough to be a new invite
func IsFreshJoin(joinedAt, now time.Time) bool {
	return !joinedAt.IsZero() && now.Sub(joinedAt) <= freshJoin
}
