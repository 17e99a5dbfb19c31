package utils

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/config"
	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/mqtt"
	"github.com/bwmarrin/discordgo"
)

// storageStatus is implemented by backends that can report their health
type storageStatus interface {
	GetStatus() (string, bool)
}

func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"📊 Muestra el estado y las estadísticas del bot",
		"utils",
		statusHandler,
	)
}

func statusHandler(ctx *discord.CommandContext) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	storage := "⚪ No inicializado"
	if repos := database.Get(); repos != nil {
		storage = "🟢 Disponible"
		if reporter, ok := repos.Store.Backend().(storageStatus); ok {
			text, online := reporter.GetStatus()
			storage = onlineDot(online) + " " + text
		}
	}

	broker := "⚪ Desactivado"
	if mc := mqtt.Get(); mc != nil {
		broker = onlineDot(mc.IsConnected()) + " " + mqttText(mc.IsConnected())
	}

	memberCount := 0
	if ctx.Session.State != nil {
		for _, guild := range ctx.Session.State.Guilds {
			memberCount += guild.MemberCount
		}
	}

	embed := common.Embed("📊 Estado de Toothless", "", common.ColorInfo)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("🤖 Bot", onlineDot(ctx.Client.IsReady())+" Online", true),
		common.Field("💾 Almacenamiento", storage, true),
		common.Field("📡 MQTT", broker, true),
		common.Field("🏠 Servidores", fmt.Sprintf("%d", ctx.Client.GuildCount()), true),
		common.Field("👥 Miembros", common.FormatAmount(int64(memberCount)), true),
		common.Field("⏱ Uptime", FormatUptime(ctx.Client.Uptime()), true),
		common.Field("🖥 RAM", fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024), true),
		common.Field("⚙️ Goroutines", fmt.Sprintf("%d / %d CPUs", runtime.NumGoroutine(), runtime.NumCPU()), true),
		common.Field("📚 Versiones", fmt.Sprintf("Bot %s\nGo %s\nDiscordGo %s",
			config.Version, strings.TrimPrefix(runtime.Version(), "go"), discordgo.VERSION), true),
	}
	return ctx.ReplyEmbed(embed)
}

func onlineDot(online bool) string {
	if online {
		return "🟢"
	}
	return "🔴"
}

func mqttText(connected bool) string {
	if connected {
		return "Conectado"
	}
	return "Desconectado"
}

// FormatUptime renders a duration as "2 días, 3 horas, 4 minutos"
func FormatUptime(dur time.Duration) string {
	days := int(dur.Hours() / 24)
	hours := int(dur.Hours()) % 24
	minutes := int(dur.Minutes()) % 60
	seconds := int(dur.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d días", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d horas", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutos", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d segundos", seconds))
	}

	return strings.Join(parts, ", ")
}
