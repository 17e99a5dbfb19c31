package levels

import (
	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
)

func createEconomyLeaderboardCommand() *discord.Command {
	return discord.NewCommand(
		"economy",
		"Los usuarios más ricos",
		"levels",
		economyLeaderboardHandler,
	).InGuild()
}

func createLevelsLeaderboardCommand() *discord.Command {
	return discord.NewCommand(
		"levels",
		"Los usuarios con más XP",
		"levels",
		levelsLeaderboardHandler,
	).InGuild()
}

func economyLeaderboardHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}
	currency := repos.Guilds.Get(ctx.GuildID()).Economy.Currency
	entries := repos.Economy.Leaderboard(ctx.GuildID(), leaderboardLimit)
	return ctx.ReplyEmbed(common.Embed("🏆 Clasificación de economía", EconomyLines(entries, currency), common.ColorGold))
}

func levelsLeaderboardHandler(ctx *discord.CommandContext) error {
	repos, ok := common.Repos(ctx)
	if !ok {
		return nil
	}
	entries := repos.Levels.Leaderboard(ctx.GuildID(), leaderboardLimit)
	return ctx.ReplyEmbed(common.Embed("🏆 Clasificación de niveles", LevelLines(entries), common.ColorGold))
}
