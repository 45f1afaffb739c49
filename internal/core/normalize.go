// Package core implements the transaction pipeline: normalization,
// aggregation, budget evaluation and report generation. Everything here is a
// pure function of its inputs; the only logging is the warning on unknown
// currency codes during rescaling.
package core

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the accepted date formats, tried in order. Time-of-day, if
// present, is discarded.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// Normalize validates a raw batch and canonicalizes it into a TransactionSet
// in the base currency.
//
// Every record must carry Date and Amount; a missing value fails the whole
// batch with SchemaError, a malformed one with ParseError. Type is derived
// from the amount's sign regardless of any supplied value, and Category
// falls back to the type name when absent.
func Normalize(records []RawRecord) (TransactionSet, error) {
	set := TransactionSet{
		Currency:     BaseCurrency,
		Transactions: make([]Transaction, 0, len(records)),
	}

	for i, r := range records {
		dateStr := strings.TrimSpace(r.Date)
		if dateStr == "" {
			return TransactionSet{}, &SchemaError{Field: "Date"}
		}
		amountStr := strings.TrimSpace(r.Amount)
		if amountStr == "" {
			return TransactionSet{}, &SchemaError{Field: "Amount"}
		}

		date, ok := parseDate(dateStr)
		if !ok {
			return TransactionSet{}, &ParseError{Row: i, Field: "Date", Value: r.Date}
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return TransactionSet{}, &ParseError{Row: i, Field: "Amount", Value: r.Amount}
		}

		txType := TypeOf(amount)
		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = string(txType)
		}

		set.Transactions = append(set.Transactions, Transaction{
			Date:        date,
			Description: strings.TrimSpace(r.Description),
			Category:    category,
			Amount:      amount,
			Type:        txType,
		})
	}

	return set, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Calendar date only, no time-of-day semantics.
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Rescale returns a copy of the set converted to the target currency using
// the given factor table (factors relative to the base currency). An unknown
// target code degrades to factor 1.0; that silent no-op is surfaced as a
// warning so it is at least visible in the logs.
func (s TransactionSet) Rescale(target string, rates map[string]float64) TransactionSet {
	out := s.Clone()
	if target == "" || target == s.Currency {
		return out
	}

	factor, ok := rates[target]
	if !ok {
		slog.Warn("unknown currency code, amounts left unscaled",
			"currency", target, "factor", 1.0)
		factor = 1.0
	}

	for i := range out.Transactions {
		out.Transactions[i].Amount *= factor
	}
	out.Currency = target
	return out
}
