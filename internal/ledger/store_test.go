package ledger

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"gullak/internal/core"
)

func TestGetCreatesEmptyLedger(t *testing.T) {
	s := NewStore(10, time.Minute)
	l := s.Get("user-1")
	if l == nil {
		t.Fatal("Get returned nil")
	}
	if len(l.Budgets) != 0 || len(l.Expenses) != 0 || len(l.DebtsBills) != 0 {
		t.Fatalf("fresh ledger not empty: %+v", l)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestPutThenGetRoundTrip(t *testing.T) {
	s := NewStore(10, time.Minute)
	l := core.NewLedger()
	l.SetBudget("March", "Food", core.Money{Cents: 500000})
	s.Put("user-1", l)

	got := s.Get("user-1")
	if amt, ok := got.Budget("March", "Food"); !ok || amt.Cents != 500000 {
		t.Fatalf("stored ledger lost state: %v %v", amt, ok)
	}
}

func TestCapacityEvictionLosesLedger(t *testing.T) {
	s := NewStore(3, time.Minute)

	l := s.Get("victim")
	l.SetBudget("March", "Food", core.Money{Cents: 100})
	s.Put("victim", l)

	// fill past capacity without touching victim again
	for n := 0; n < 3; n++ {
		s.Get(fmt.Sprintf("user-%d", n))
	}

	// evicted state is unrecoverable, a fresh empty ledger comes back
	got := s.Get("victim")
	if _, ok := got.Budget("March", "Food"); ok {
		t.Fatal("evicted ledger state survived")
	}
}

func TestTTLExpiryLosesLedger(t *testing.T) {
	s := NewStore(10, 20*time.Millisecond)
	l := s.Get("u")
	l.SetBudget("March", "Food", core.Money{Cents: 100})
	s.Put("u", l)

	time.Sleep(40 * time.Millisecond)

	if _, ok := s.Get("u").Budget("March", "Food"); ok {
		t.Fatal("expired ledger state survived")
	}
}

func TestAccessRefreshesTTL(t *testing.T) {
	s := NewStore(10, 50*time.Millisecond)
	l := s.Get("u")
	l.SetBudget("March", "Food", core.Money{Cents: 100})
	s.Put("u", l)

	for n := 0; n < 4; n++ {
		time.Sleep(30 * time.Millisecond)
		if _, ok := s.Get("u").Budget("March", "Food"); !ok {
			t.Fatalf("ledger expired despite access on iteration %d", n)
		}
	}
}

func TestUpdateDoesNotPersistOnError(t *testing.T) {
	s := NewStore(10, time.Minute)
	wantErr := fmt.Errorf("boom")
	err := s.Update("u", func(l *core.Ledger) error {
		return wantErr
	})
	if err == nil {
		t.Fatal("Update swallowed the error")
	}
}

func TestUpdateSerializesPerUser(t *testing.T) {
	s := NewStore(100, time.Minute)
	const workers = 50

	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update("shared", func(l *core.Ledger) error {
				l.AddExpense("March", "Food", core.Money{Cents: 1}, time.Now())
				return nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := s.Get("shared").TotalSpent("March", "Food"); got.Cents != workers {
		t.Fatalf("lost updates: total %d cents, want %d", got.Cents, workers)
	}
}
