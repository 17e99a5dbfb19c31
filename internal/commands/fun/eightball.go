package fun

import (
	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func createEightBallCommand() *discord.Command {
	return discord.NewCommand(
		"8ball",
		"🎱 Hazle una pregunta a la bola mágica",
		"fun",
		eightBallHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "pregunta",
			Description: "Tu pregunta",
			Required:    true,
			MaxLength:   256,
		},
	)
}

func eightBallHandler(ctx *discord.CommandContext) error {
	embed := common.Embed("🎱 Bola mágica", "", common.ColorFun)
	embed.Fields = []*discordgo.MessageEmbedField{
		common.Field("❓ Pregunta", ctx.GetStringOption("pregunta"), false),
		common.Field("💬 Respuesta", EightBall(rnd), false),
	}
	return ctx.ReplyEmbed(embed)
}
