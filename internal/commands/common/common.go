// Package common holds the embed and formatting helpers shared by every
// command category.
package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	ColorSuccess = 0x57F287
	ColorError   = 0xED4245
	ColorGold    = 0xFFD700
	ColorInfo    = 0x3498DB
	ColorFun     = 0x9B59B6
	ColorTickets = 0xE91E63
)

// Footer is the text shown under every embed
const Footer = "🐉 Toothless"

// NotSet is shown for unset channels and roles
const NotSet = "No establecido"

// Embed builds a timestamped embed with the default footer
func Embed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: Footer},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// Field builds an embed field
func Field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

// ReplyError answers with an ephemeral error embed
func ReplyError(ctx *discord.CommandContext, message string) error {
	return ctx.ReplyEphemeralEmbed(Embed("❌ Error", message, ColorError))
}

// Repos returns the process repositories, answering the interaction when the
// store has not been initialized
func Repos(ctx *discord.CommandContext) (*database.Repositories, bool) {
	repos := database.Get()
	if repos == nil {
		_ = ReplyError(ctx, "El almacenamiento no está disponible en este momento.")
		return nil, false
	}
	return repos, true
}

// FormatAmount renders n with dot thousands separators (1.234.567)
func FormatAmount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

// FormatDuration renders d as "3h 12m", "12m" or "40s"
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		return fmt.Sprintf("%ds", secs)
	}

	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// ChannelMention renders a channel reference or NotSet
func ChannelMention(id *string) string {
	if id == nil || *id == "" {
		return NotSet
	}
	return "<#" + *id + ">"
}

// RoleMention renders a role reference or NotSet
func RoleMention(id *string) string {
	if id == nil || *id == "" {
		return NotSet
	}
	return "<@&" + *id + ">"
}

// Status renders an enabled flag
func Status(enabled bool) string {
	if enabled {
		return "✅ Activo"
	}
	return "❌ Inactivo"
}

// Money renders an amount followed by the guild currency
func Money(amount int64, currency string) string {
	if currency == "" {
		currency = "🪙"
	}
	return fmt.Sprintf("`%s` %s", FormatAmount(amount), currency)
}
