package core

import (
	"fmt"
	"time"
)

// BaseCurrency is the currency all stored amounts are expressed in.
const BaseCurrency = "USD"

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

type (
	TransactionType string

	// RawRecord is one tabular row as delivered by a record source, before
	// validation. Date and Amount are required; the rest may be empty.
	RawRecord struct {
		Date        string
		Description string
		Category    string
		Amount      string
		Type        string
	}

	// Transaction is a single dated, signed monetary record. The sign of
	// Amount is the source of truth for Type: positive is income, everything
	// else (zero included) is an expense.
	Transaction struct {
		Date        time.Time
		Description string
		Category    string
		Amount      float64
		Type        TransactionType
	}

	// TransactionSet holds the session's batch for one currency. It is
	// replaced wholesale on a new load; Rescale produces a new set rather
	// than mutating this one.
	TransactionSet struct {
		Currency     string
		Transactions []Transaction
	}
)

// TypeOf classifies an amount by its sign. Zero classifies as Expense: the
// test is amount > 0, a documented policy rather than a law of finance.
func TypeOf(amount float64) TransactionType {
	if amount > 0 {
		return Income
	}
	return Expense
}

// SchemaError reports a required input field missing from a record. The whole
// batch is rejected; the caller decides whether to fall back to a synthetic
// dataset.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Field)
}

// ParseError reports a malformed value in a record. Rejecting the batch is
// deliberate: coercing or dropping rows would corrupt the reported totals.
type ParseError struct {
	Row   int
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: invalid %s value %q", e.Row, e.Field, e.Value)
}

// Clone returns a deep copy of the set.
func (s TransactionSet) Clone() TransactionSet {
	out := TransactionSet{Currency: s.Currency}
	out.Transactions = make([]Transaction, len(s.Transactions))
	copy(out.Transactions, s.Transactions)
	return out
}
