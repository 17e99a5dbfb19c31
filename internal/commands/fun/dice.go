package fun

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func createDiceCommand() *discord.Command {
	lo := 1.0
	return discord.NewCommand(
		"dice",
		"🎲 Lanza uno o varios dados",
		"fun",
		diceHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "numero",
			Description: "Cantidad de dados (1-10)",
			MinValue:    &lo,
			MaxValue:    maxDice,
		},
	)
}

func diceHandler(ctx *discord.CommandContext) error {
	rolls := RollDice(int(ctx.GetIntOptionOr("numero", 1)), rnd)
	return ctx.ReplyEmbed(common.Embed("🎲 Dados", FormatRolls(rolls), common.ColorFun))
}

// FormatRolls renders the faces and, for several dice, their sum
func FormatRolls(rolls []int) string {
	faces := make([]string, len(rolls))
	sum := 0
	for i, r := range rolls {
		faces[i] = fmt.Sprintf("%s `%d`", DiceFaces[r-1], r)
		sum += r
	}
	out := strings.Join(faces, "  ")
	if len(rolls) > 1 {
		out += fmt.Sprintf("\n\n**Total:** %d", sum)
	}
	return out
}
