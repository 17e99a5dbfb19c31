// Package economy provides the wallet and bank commands: /balance, /daily,
// /work, /deposit, /withdraw and /pay.
package economy

import (
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

// Cooldown windows and reward ranges
const (
	DailyCooldown = 24 * time.Hour
	WorkCooldown  = time.Hour

	dailyMin    = 500
	dailySpread = 500
	workMin     = 100
	workSpread  = 300
)

// Cooldown feature names, used as the first part of the cooldown key
const (
	FeatureDaily = "daily"
	FeatureWork  = "work"
)

// Job is a flavour entry for /work
type Job struct {
	Name  string
	Emoji string
}

// Jobs /work picks from
var Jobs = []Job{
	{"Programador", "💻"},
	{"Chef", "👨‍🍳"},
	{"Médico", "👨‍⚕️"},
	{"Streamer", "🎥"},
	{"Artista", "🎨"},
	{"Músico", "🎵"},
	{"Piloto", "✈️"},
	{"Veterinario", "🐾"},
}

// Rand returns a number in [0, n)
type Rand func(n int) int

// Payout is the outcome of a timed reward claim
type Payout struct {
	Claimed   bool
	Amount    int64
	Account   models.EconomyAccount
	Job       Job
	Remaining time.Duration
}

// ClaimDaily grants 500-999 coins once every 24 hours
func ClaimDaily(repos *database.Repositories, guildID, userID string, now time.Time, rnd Rand) Payout {
	return claim(repos, FeatureDaily, guildID, userID, DailyCooldown, now, int64(dailyMin+rnd(dailySpread)))
}

// Work grants 100-399 coins once every hour for a random job
func Work(repos *database.Repositories, guildID, userID string, now time.Time, rnd Rand) Payout {
	job := Jobs[rnd(len(Jobs))]
	p := claim(repos, FeatureWork, guildID, userID, WorkCooldown, now, int64(workMin+rnd(workSpread)))
	p.Job = job
	return p
}

// claim checks the cooldown and credits the wallet as one unit per user
func claim(repos *database.Repositories, feature, guildID, userID string, window time.Duration, now time.Time, amount int64) Payout {
	unlock := repos.Store.Locks.Lock(database.LockKey(feature, guildID, userID))
	defer unlock()

	ok, remaining := repos.Cooldowns.TryAcquire(database.CooldownKey(feature, guildID, userID), window, now)
	if !ok {
		return Payout{Remaining: remaining}
	}

	account, _ := repos.Economy.Update(guildID, userID, func(a *models.EconomyAccount) error {
		a.Wallet += amount
		return nil
	})
	return Payout{Claimed: true, Amount: amount, Account: account}
}

// Deposit moves amount from the wallet to the bank
func Deposit(repos *database.Repositories, guildID, userID string, amount int64) (models.EconomyAccount, error) {
	if amount <= 0 {
		return repos.Economy.Get(guildID, userID), database.ErrInvalidAmount
	}
	return repos.Economy.Update(guildID, userID, func(a *models.EconomyAccount) error {
		if a.Wallet < amount {
			return database.ErrInsufficientFunds
		}
		a.Wallet -= amount
		a.Bank += amount
		return nil
	})
}

// Withdraw moves amount from the bank to the wallet
func Withdraw(repos *database.Repositories, guildID, userID string, amount int64) (models.EconomyAccount, error) {
	if amount <= 0 {
		return repos.Economy.Get(guildID, userID), database.ErrInvalidAmount
	}
	return repos.Economy.Update(guildID, userID, func(a *models.EconomyAccount) error {
		if a.Bank < amount {
			return database.ErrInsufficientFunds
		}
		a.Bank -= amount
		a.Wallet += amount
		return nil
	})
}
