package models

// EconomyAccount is a user's balance within a guild
type EconomyAccount struct {
	Wallet    int64    `json:"wallet"`
	Bank      int64    `json:"bank"`
	Inventory []string `json:"inventory"`
}

// NewEconomyAccount returns an empty account
func NewEconomyAccount() EconomyAccount {
	return EconomyAccount{Inventory: []string{}}
}

// Total is wallet plus bank
func (a EconomyAccount) Total() int64 {
	return a.Wallet + a.Bank
}

// Clone returns a deep copy of the account
func (a EconomyAccount) Clone() EconomyAccount {
	if a.Inventory != nil {
		a.Inventory = append([]string{}, a.Inventory...)
	}
	return a
}

// EconomyEntry is one row of the economy leaderboard
type EconomyEntry struct {
	UserID string `json:"userId"`
	Wallet int64  `json:"wallet"`
	Bank   int64  `json:"bank"`
	Total  int64  `json:"total"`
}
