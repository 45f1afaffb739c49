package core

import (
	"sort"
	"time"
)

// Filter selects a subset of transactions. Zero values mean "no constraint".
type Filter struct {
	From       time.Time
	To         time.Time
	Categories []string
	Types      []TransactionType
}

// Apply returns a new set containing only matching transactions.
func (s TransactionSet) Apply(f Filter) TransactionSet {
	out := TransactionSet{Currency: s.Currency}
	for _, t := range s.Transactions {
		if !f.From.IsZero() && t.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.Date.After(f.To) {
			continue
		}
		if len(f.Categories) > 0 && !containsString(f.Categories, t.Category) {
			continue
		}
		if len(f.Types) > 0 && !containsType(f.Types, t.Type) {
			continue
		}
		out.Transactions = append(out.Transactions, t)
	}
	return out
}

// Recent returns up to n transactions ordered most recent first, as shown in
// the transaction table.
func (s TransactionSet) Recent(n int) []Transaction {
	out := make([]Transaction, len(s.Transactions))
	copy(out, s.Transactions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsType(list []TransactionType, v TransactionType) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
