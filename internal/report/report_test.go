package report

import (
	"context"
	"math"
	"testing"
	"time"

	"expensetracker/internal/categories"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/persistence"
	"expensetracker/internal/storage/memory"
	"expensetracker/internal/store"
)

type countingSource struct {
	txs       []core.Transaction
	rev       uint64
	snapshots int
}

func (s *countingSource) Revision() uint64 { return s.rev }
func (s *countingSource) Snapshot() ([]core.Transaction, uint64) {
	s.snapshots++
	return s.txs, s.rev
}

func TestBreakdownUsesRegistryColors(t *testing.T) {
	txs := []core.Transaction{
		{ID: "1", Type: core.Income, Amount: core.Money{Cents: 100000}, Category: "Salary"},
		{ID: "2", Type: core.Expense, Amount: core.Money{Cents: 20000}, Category: "Food & Dining"},
		{ID: "3", Type: core.Expense, Amount: core.Money{Cents: 5000}, Category: "Food & Dining"},
		{ID: "4", Type: core.Expense, Amount: core.Money{Cents: 5000}, Category: "Imported Legacy"},
	}
	b := Breakdown(txs)
	if len(b) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(b))
	}
	if b[0].Color != categories.ColorOf("Food & Dining") || b[1].Color != categories.Fallback() {
		t.Fatalf("unexpected colors %+v", b)
	}
	if math.Abs(b[0].Percentage+b[1].Percentage-100) > 1e-9 {
		t.Fatalf("percentages %v + %v", b[0].Percentage, b[1].Percentage)
	}
}

func TestReporterCachesPerRevision(t *testing.T) {
	src := &countingSource{
		txs: []core.Transaction{{ID: "1", Type: core.Expense, Amount: core.Money{Cents: 100}, Category: "Travel"}},
		rev: 1,
	}
	r := NewReporter(src, 4, time.Minute)

	first := r.Current()
	second := r.Current()
	if src.snapshots != 1 {
		t.Fatalf("expected a single snapshot, got %d", src.snapshots)
	}
	if first.Summary != second.Summary || first.Count != 1 {
		t.Fatalf("unexpected reports %+v %+v", first, second)
	}

	first.Breakdown[0].Category = "mutated"
	if r.Breakdown()[0].Category != "Travel" {
		t.Fatal("cached breakdown aliased by caller")
	}

	src.txs = append(src.txs, core.Transaction{ID: "2", Type: core.Income, Amount: core.Money{Cents: 500}, Category: "Gift"})
	src.rev = 2
	if s := r.Summary(); s.NetIncome.Cents != 400 {
		t.Fatalf("stale summary %+v", s)
	}
	if src.snapshots != 2 {
		t.Fatalf("expected recompute on new revision, got %d snapshots", src.snapshots)
	}
}

func TestReporterOverStore(t *testing.T) {
	gw := persistence.NewGateway(memory.New(), persistence.WithLogger(log.Discard()))
	s := store.New(gw, store.WithLogger(log.Discard()))
	r := NewReporter(s, 8, 0)
	ctx := context.Background()

	if rep := r.Current(); rep.Summary != (core.Summary{}) || len(rep.Breakdown) != 0 || rep.Breakdown == nil {
		t.Fatalf("empty store report %+v", rep)
	}

	s.Add(ctx, core.Draft{Type: core.Income, Amount: core.Money{Cents: 100000}, Description: "pay", Category: "Salary", Date: core.NewDate(2025, 1, 1)})
	s.Add(ctx, core.Draft{Type: core.Expense, Amount: core.Money{Cents: 20000}, Description: "food", Category: "Food & Dining", Date: core.NewDate(2025, 1, 2)})
	s.Add(ctx, core.Draft{Type: core.Expense, Amount: core.Money{Cents: 5000}, Description: "more food", Category: "Food & Dining", Date: core.NewDate(2025, 1, 3)})

	rep := r.Current()
	if rep.Summary.TotalIncome.Cents != 100000 || rep.Summary.TotalExpenses.Cents != 25000 || rep.Summary.NetIncome.Cents != 75000 {
		t.Fatalf("unexpected summary %+v", rep.Summary)
	}
	if len(rep.Breakdown) != 1 || rep.Breakdown[0].Percentage != 100 {
		t.Fatalf("unexpected breakdown %+v", rep.Breakdown)
	}
}
