package economy

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

func newTestRepos(t *testing.T) *database.Repositories {
	t.Helper()
	return database.NewRepositories(database.NewStore(database.NewFileBackend(t.TempDir())))
}

// fixed always returns v, clamped to the range
func fixed(v int) Rand {
	return func(n int) int {
		if v >= n {
			return n - 1
		}
		return v
	}
}

func TestClaimDailyRange(t *testing.T) {
	tests := []struct {
		name string
		rnd  Rand
		want int64
	}{
		{"minimum", fixed(0), 500},
		{"maximum", fixed(1 << 30), 999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newTestRepos(t)
			p := ClaimDaily(repos, "g1", "u1", time.Now(), tt.rnd)
			if !p.Claimed || p.Amount != tt.want {
				t.Errorf("ClaimDaily() = %+v, want claimed %d", p, tt.want)
			}
			if p.Account.Wallet != tt.want {
				t.Errorf("wallet = %d, want %d", p.Account.Wallet, tt.want)
			}
		})
	}
}

func TestClaimDailyCooldown(t *testing.T) {
	repos := newTestRepos(t)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := ClaimDaily(repos, "g1", "u1", start, fixed(0))
	if !first.Claimed {
		t.Fatal("first claim should succeed")
	}

	second := ClaimDaily(repos, "g1", "u1", start.Add(23*time.Hour), fixed(0))
	if second.Claimed {
		t.Fatal("second claim within 24h should be refused")
	}
	if second.Remaining != time.Hour {
		t.Errorf("Remaining = %v, want 1h", second.Remaining)
	}
	if got := repos.Economy.Get("g1", "u1").Wallet; got != 500 {
		t.Errorf("refused claim changed the wallet: %d", got)
	}

	third := ClaimDaily(repos, "g1", "u1", start.Add(24*time.Hour), fixed(0))
	if !third.Claimed || third.Account.Wallet != 1000 {
		t.Errorf("claim after 24h = %+v, want wallet 1000", third)
	}

	if other := ClaimDaily(repos, "g2", "u1", start, fixed(0)); !other.Claimed {
		t.Error("cooldowns must be per guild")
	}
}

func TestClaimDailyConcurrent(t *testing.T) {
	repos := newTestRepos(t)
	now := time.Now()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ClaimDaily(repos, "g1", "u1", now, fixed(0)).Claimed {
				mu.Lock()
				claimed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if claimed != 1 {
		t.Errorf("%d concurrent claims succeeded, want 1", claimed)
	}
	if got := repos.Economy.Get("g1", "u1").Wallet; got != 500 {
		t.Errorf("wallet = %d, want 500", got)
	}
}

func TestWork(t *testing.T) {
	repos := newTestRepos(t)
	// cooldowns are stored with millisecond precision
	now := time.Now().Truncate(time.Millisecond)

	p := Work(repos, "g1", "u1", now, fixed(2))
	if !p.Claimed {
		t.Fatal("first work should succeed")
	}
	if p.Amount != 102 {
		t.Errorf("Amount = %d, want 102", p.Amount)
	}
	if p.Job != Jobs[2] {
		t.Errorf("Job = %+v, want %+v", p.Job, Jobs[2])
	}

	again := Work(repos, "g1", "u1", now.Add(30*time.Minute), fixed(2))
	if again.Claimed || again.Remaining != 30*time.Minute {
		t.Errorf("Work() within the hour = %+v", again)
	}

	top := Work(newTestRepos(t), "g1", "u1", now, fixed(1<<30))
	if top.Amount != 399 {
		t.Errorf("max Amount = %d, want 399", top.Amount)
	}
}

func TestDepositWithdraw(t *testing.T) {
	repos := newTestRepos(t)
	repos.Economy.Set("g1", "u1", models.EconomyAccount{Wallet: 100, Bank: 50})

	tests := []struct {
		name       string
		op         bankOp
		amount     int64
		wantErr    error
		wantWallet int64
		wantBank   int64
	}{
		{"deposit", Deposit, 60, nil, 40, 110},
		{"deposit too much", Deposit, 41, database.ErrInsufficientFunds, 40, 110},
		{"deposit zero", Deposit, 0, database.ErrInvalidAmount, 40, 110},
		{"withdraw", Withdraw, 10, nil, 50, 100},
		{"withdraw too much", Withdraw, 101, database.ErrInsufficientFunds, 50, 100},
		{"withdraw negative", Withdraw, -5, database.ErrInvalidAmount, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op(repos, "g1", "u1", tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			acc := repos.Economy.Get("g1", "u1")
			if acc.Wallet != tt.wantWallet || acc.Bank != tt.wantBank {
				t.Errorf("account = %d/%d, want %d/%d", acc.Wallet, acc.Bank, tt.wantWallet, tt.wantBank)
			}
		})
	}
}
