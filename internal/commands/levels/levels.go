// Package levels provides /rank and the /leaderboard group.
package levels

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/ToothlessGo/internal/commands/common"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

const (
	barWidth         = 10
	leaderboardLimit = 10
)

// ProgressBar renders xp/needed as a fixed-width bar followed by a percentage
func ProgressBar(xp, needed int64) string {
	if needed <= 0 {
		needed = 1
	}
	if xp < 0 {
		xp = 0
	}
	if xp > needed {
		xp = needed
	}
	filled := int(xp * barWidth / needed)
	percent := xp * 100 / needed
	return fmt.Sprintf("%s%s %d%%", strings.Repeat("🟩", filled), strings.Repeat("⬛", barWidth-filled), percent)
}

// Medal returns the podium emoji for a 1-based position, or "#n"
func Medal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("#%d", position)
}

// EconomyLines renders the economy leaderboard rows
func EconomyLines(entries []models.EconomyEntry, currency string) string {
	if len(entries) == 0 {
		return "Todavía no hay nadie en la clasificación."
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s <@%s> %s", Medal(i+1), e.UserID, common.Money(e.Total, currency))
	}
	return strings.Join(lines, "\n")
}

// LevelLines renders the levels leaderboard rows
func LevelLines(entries []models.LevelEntry) string {
	if len(entries) == 0 {
		return "Todavía no hay nadie en la clasificación."
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s <@%s> Nivel **%d** (%s XP)", Medal(i+1), e.UserID, e.Level, common.FormatAmount(e.TotalXP))
	}
	return strings.Join(lines, "\n")
}
