package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// Category describes a help section
type Category struct {
	Key   string
	Label string
}

// Categories lists the help sections in display order
var Categories = []Category{
	{"config", "⚙️ Configuración"},
	{"mod", "🛡️ Moderación"},
	{"economy", "💰 Economía"},
	{"levels", "⭐ Niveles"},
	{"fun", "🎮 Diversión"},
	{"utils", "🔧 Utilidad"},
}

func createHelpCommand() *discord.Command {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(Categories))
	for i, c := range Categories {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: c.Label, Value: c.Key}
	}

	return discord.NewCommand(
		"help",
		"📖 Muestra la lista de comandos",
		"utils",
		helpHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "categoria",
			Description: "Categoría a mostrar",
			Choices:     choices,
		},
	)
}

func helpHandler(ctx *discord.CommandContext) error {
	commands := ctx.Client.Commands.All()
	category := ctx.GetStringOption("categoria")

	if category == "" {
		embed := common.Embed("📖 Ayuda de Toothless",
			"Usa `/help categoria:<nombre>` para ver los comandos de una categoría.", common.ColorInfo)
		counts := ctx.Client.Commands.ByCategory()
		for _, c := range Categories {
			if counts[c.Key] == 0 {
				continue
			}
			embed.Fields = append(embed.Fields,
				common.Field(c.Label, fmt.Sprintf("%d comandos", counts[c.Key]), true))
		}
		return ctx.ReplyEmbed(embed)
	}

	label := category
	for _, c := range Categories {
		if c.Key == category {
			label = c.Label
		}
	}
	return ctx.ReplyEmbed(common.Embed(label, CommandList(commands, category), common.ColorInfo))
}

// CommandList renders the commands of one category as "/name sub - description"
// lines, sorted by name. Dev commands are left out.
func CommandList(commands map[string]*discord.Command, category string) string {
	names := make([]string, 0, len(commands))
	for name, cmd := range commands {
		if cmd.Category == category && !cmd.IsDev {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "No hay comandos en esta categoría."
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("`/%s` - %s", strings.ReplaceAll(name, ".", " "), commands[name].Description)
	}
	return strings.Join(lines, "\n")
}
