package database

import (
	"sort"

	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

type economyDoc = map[string]map[string]models.EconomyAccount

// EconomyRepository stores wallet/bank accounts keyed by guild and user
type EconomyRepository struct {
	store *Store
	dm    *DataManager[economyDoc]
}

// NewEconomyRepository registers the economy document on store
func NewEconomyRepository(store *Store) *EconomyRepository {
	return &EconomyRepository{
		store: store,
		dm: NewDataManager(store, DocEconomy, func() economyDoc {
			return make(economyDoc)
		}),
	}
}

// Get returns the account, creating an empty one on first access
func (r *EconomyRepository) Get(guildID, userID string) models.EconomyAccount {
	var account models.EconomyAccount
	r.dm.Update(func(doc *economyDoc) bool {
		acc, created := accountFor(doc, guildID, userID)
		account = acc.Clone()
		return created
	})
	return account
}

// Set replaces the account and returns the stored value
func (r *EconomyRepository) Set(guildID, userID string, account models.EconomyAccount) models.EconomyAccount {
	if account.Inventory == nil {
		account.Inventory = []string{}
	}
	r.dm.Update(func(doc *economyDoc) bool {
		accountFor(doc, guildID, userID)
		(*doc)[guildID][userID] = account.Clone()
		return true
	})
	r.store.notify(ChangeEvent{Document: DocEconomy, GuildID: guildID, UserID: userID})
	return account
}

// Update runs fn on the account under the document lock and persists the
// result. fn returning an error aborts the update.
func (r *EconomyRepository) Update(guildID, userID string, fn func(account *models.EconomyAccount) error) (models.EconomyAccount, error) {
	var (
		result models.EconomyAccount
		fnErr  error
	)
	r.dm.Update(func(doc *economyDoc) bool {
		acc, created := accountFor(doc, guildID, userID)
		working := acc.Clone()
		if fnErr = fn(&working); fnErr != nil {
			result = acc.Clone()
			return created
		}
		(*doc)[guildID][userID] = working
		result = working.Clone()
		return true
	})
	if fnErr != nil {
		return result, fnErr
	}
	r.store.notify(ChangeEvent{Document: DocEconomy, GuildID: guildID, UserID: userID})
	return result, nil
}

// Transfer moves amount from one wallet to another in a single update
func (r *EconomyRepository) Transfer(guildID, fromID, toID string, amount int64) (from, to models.EconomyAccount, err error) {
	if amount <= 0 {
		return from, to, ErrInvalidAmount
	}
	if fromID == toID {
		return from, to, ErrSameAccount
	}

	r.dm.Update(func(doc *economyDoc) bool {
		src, srcCreated := accountFor(doc, guildID, fromID)
		dst, dstCreated := accountFor(doc, guildID, toID)
		if src.Wallet < amount {
			err = ErrInsufficientFunds
			from, to = src.Clone(), dst.Clone()
			return srcCreated || dstCreated
		}

		src.Wallet -= amount
		dst.Wallet += amount
		(*doc)[guildID][fromID] = src
		(*doc)[guildID][toID] = dst
		from, to = src.Clone(), dst.Clone()
		return true
	})
	if err != nil {
		return from, to, err
	}

	r.store.notify(ChangeEvent{Document: DocEconomy, GuildID: guildID, UserID: fromID})
	r.store.notify(ChangeEvent{Document: DocEconomy, GuildID: guildID, UserID: toID})
	return from, to, nil
}

// Leaderboard returns up to limit accounts ordered by total balance
func (r *EconomyRepository) Leaderboard(guildID string, limit int) []models.EconomyEntry {
	var entries []models.EconomyEntry
	r.dm.View(func(doc *economyDoc) {
		for userID, acc := range (*doc)[guildID] {
			entries = append(entries, models.EconomyEntry{
				UserID: userID,
				Wallet: acc.Wallet,
				Bank:   acc.Bank,
				Total:  acc.Total(),
			})
		}
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].UserID < entries[j].UserID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []models.EconomyEntry{}
	}
	return entries
}

// accountFor returns the stored account, inserting an empty one if needed
func accountFor(doc *economyDoc, guildID, userID string) (models.EconomyAccount, bool) {
	ensureMap(doc)
	guild, ok := (*doc)[guildID]
	if !ok || guild == nil {
		guild = make(map[string]models.EconomyAccount)
		(*doc)[guildID] = guild
	}
	if acc, ok := guild[userID]; ok {
		return acc, false
	}
	acc := models.NewEconomyAccount()
	guild[userID] = acc
	return acc, true
}
