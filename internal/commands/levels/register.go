package levels

import (
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
)

// RegisterLevelCommands registers /rank and /leaderboard
func RegisterLevelCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createRankCommand())

	group := client.CommandHandler.BuildCommandGroup(
		"leaderboard",
		"🏆 Clasificaciones del servidor",
		createEconomyLeaderboardCommand(),
		createLevelsLeaderboardCommand(),
	)
	client.CommandHandler.AddGlobalCommand(group)
}
