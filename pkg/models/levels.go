package models

// LevelProgress is a user's XP state within a guild
type LevelProgress struct {
	XP      int64 `json:"xp"`
	Level   int64 `json:"level"`
	TotalXP int64 `json:"totalXp"`
}

// XPForNextLevel returns the XP needed to go from level to level+1
func XPForNextLevel(level int64) int64 {
	return 100 * (level + 1)
}

// AddXP credits amount and applies at most one level-up, keeping the
// overflow in XP. It reports whether the level changed.
func (p *LevelProgress) AddXP(amount int64) bool {
	if amount <= 0 {
		return false
	}
	p.XP += amount
	p.TotalXP += amount

	needed := XPForNextLevel(p.Level)
	if p.XP < needed {
		return false
	}
	p.Level++
	p.XP -= needed
	return true
}

// LevelEntry is one row of the levels leaderboard
type LevelEntry struct {
	UserID  string `json:"userId"`
	Level   int64  `json:"level"`
	XP      int64  `json:"xp"`
	TotalXP int64  `json:"totalXp"`
}
