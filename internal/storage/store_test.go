package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"findash/internal/core"
)

var dsnSeq int

// testStore opens a store on a uniquely named shared-memory database so tests
// do not see each other's data.
func testStore(t *testing.T) *SessionStore {
	t.Helper()
	dsnSeq++
	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", dsnSeq)
	s, err := NewSessionStore(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func date(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEmptyStoreDefaults(t *testing.T) {
	s := testStore(t)
	set, err := s.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if set.Currency != core.BaseCurrency {
		t.Fatalf("currency: got %q, want %q", set.Currency, core.BaseCurrency)
	}
	if len(set.Transactions) != 0 {
		t.Fatalf("expected empty set, got %d transactions", len(set.Transactions))
	}
}

func TestReplaceRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	in := core.TransactionSet{
		Currency: "EUR",
		Transactions: []core.Transaction{
			{Date: date("2024-01-20"), Description: "Rent", Category: "Housing", Amount: -850, Type: core.Expense},
			{Date: date("2024-01-15"), Description: "Salary", Category: "Salary", Amount: 3000, Type: core.Income},
		},
	}
	if err := s.Replace(ctx, in); err != nil {
		t.Fatalf("replace: %v", err)
	}

	out, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if out.Currency != "EUR" {
		t.Fatalf("currency: got %q", out.Currency)
	}
	if len(out.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(out.Transactions))
	}
	// Ordered by date regardless of insert order.
	if out.Transactions[0].Description != "Salary" || out.Transactions[1].Description != "Rent" {
		t.Fatalf("unexpected order: %+v", out.Transactions)
	}
	got := out.Transactions[0]
	if !got.Date.Equal(date("2024-01-15")) || got.Amount != 3000 || got.Type != core.Income || got.Category != "Salary" {
		t.Fatalf("salary row: %+v", got)
	}
}

func TestReplaceIsWholesale(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := core.TransactionSet{
		Currency: "USD",
		Transactions: []core.Transaction{
			{Date: date("2024-01-01"), Description: "Old", Category: "Other", Amount: -10, Type: core.Expense},
			{Date: date("2024-01-02"), Description: "Old2", Category: "Other", Amount: -20, Type: core.Expense},
		},
	}
	if err := s.Replace(ctx, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := core.TransactionSet{
		Currency: "GBP",
		Transactions: []core.Transaction{
			{Date: date("2024-02-01"), Description: "New", Category: "Other", Amount: -30, Type: core.Expense},
		},
	}
	if err := s.Replace(ctx, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	out, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if len(out.Transactions) != 1 || out.Transactions[0].Description != "New" {
		t.Fatalf("expected only the new batch, got %+v", out.Transactions)
	}
	if out.Currency != "GBP" {
		t.Fatalf("currency: got %q", out.Currency)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count: got %d", n)
	}
}
