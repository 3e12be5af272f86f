package blindbox

import (
	"errors"
	"sync"
	"testing"
)

type memoryLedger struct {
	mu     sync.Mutex
	stocks map[Tier]int
	calls  []Tier
	err    error
}

func (l *memoryLedger) TakeOne(_ uint, tier Tier) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, tier)
	if l.err != nil {
		return false, l.err
	}
	if l.stocks[tier] <= 0 {
		return false, nil
	}
	l.stocks[tier]--
	return true, nil
}

func TestResolveTakesRolledTier(t *testing.T) {
	ledger := &memoryLedger{stocks: map[Tier]int{Common: 1, Rare: 1, Secret: 1}}
	got, err := NewResolver(ledger).Resolve(1, Rare)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Resolved != Rare || !got.Decremented || got.Rolled != Rare {
		t.Fatalf("unexpected allocation: %+v", got)
	}
	if ledger.stocks[Rare] != 0 {
		t.Fatalf("rare stock want 0 got %d", ledger.stocks[Rare])
	}
}

func TestResolveFallsBackRarestFirst(t *testing.T) {
	ledger := &memoryLedger{stocks: map[Tier]int{Common: 5, Rare: 3, Secret: 1}}
	resolver := NewResolver(ledger)

	ledger.stocks[Common] = 0
	got, err := resolver.Resolve(1, Common)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Resolved != Secret || got.Rolled != Common {
		t.Fatalf("exhausted common should fall back to secret first, got %+v", got)
	}

	got, err = resolver.Resolve(1, Common)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Resolved != Rare {
		t.Fatalf("secret exhausted, fallback want rare got %s", got.Resolved)
	}
}

func TestResolveDegradesToCommonWithoutDecrement(t *testing.T) {
	ledger := &memoryLedger{stocks: map[Tier]int{}}
	for _, rolled := range AllTiers {
		got, err := NewResolver(ledger).Resolve(1, rolled)
		if err != nil {
			t.Fatalf("degrade must not be an error: %v", err)
		}
		if got.Resolved != Common || got.Decremented {
			t.Fatalf("rolled %s want degraded common, got %+v", rolled, got)
		}
	}
	for tier, stock := range ledger.stocks {
		if stock != 0 {
			t.Fatalf("stock %s changed to %d", tier, stock)
		}
	}
}

func TestResolvePropagatesLedgerError(t *testing.T) {
	boom := errors.New("db down")
	ledger := &memoryLedger{err: boom}
	if _, err := NewResolver(ledger).Resolve(1, Secret); !errors.Is(err, boom) {
		t.Fatalf("expected ledger error, got %v", err)
	}
}

func TestResolveConcurrentNeverOversells(t *testing.T) {
	ledger := &memoryLedger{stocks: map[Tier]int{Common: 3, Rare: 2, Secret: 1}}
	resolver := NewResolver(ledger)

	var wg sync.WaitGroup
	results := make(chan Allocation, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := resolver.Resolve(1, AllTiers[i%len(AllTiers)])
			if err != nil {
				t.Errorf("resolve failed: %v", err)
				return
			}
			results <- got
		}(i)
	}
	wg.Wait()
	close(results)

	decremented := 0
	for got := range results {
		if got.Decremented {
			decremented++
		}
	}
	if decremented != 6 {
		t.Fatalf("decrements want 6 got %d", decremented)
	}
	for tier, stock := range ledger.stocks {
		if stock != 0 {
			t.Fatalf("stock %s want 0 got %d", tier, stock)
		}
	}
}
