package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"findash/internal/core"
)

func TestFilename(t *testing.T) {
	now := time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)
	if got := Filename(now); got != "financial_data_20240115.csv" {
		t.Fatalf("filename: got %q", got)
	}
}

func TestWriteCSV(t *testing.T) {
	set := core.TransactionSet{
		Currency: "USD",
		Transactions: []core.Transaction{
			{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Description: "Salary", Category: "Salary", Amount: 3000, Type: core.Income},
			{Date: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), Description: "Groceries, weekly", Category: "Food", Amount: -120.5, Type: core.Expense},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, set); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Description,Category,Type,Amount" {
		t.Fatalf("header: %q", lines[0])
	}
	if lines[1] != "2024-01-15,Salary,Salary,Income,3000.00" {
		t.Fatalf("row 1: %q", lines[1])
	}
	// Commas in fields must be quoted.
	if lines[2] != `2024-01-16,"Groceries, weekly",Food,Expense,-120.50` {
		t.Fatalf("row 2: %q", lines[2])
	}
}

func TestWriteCSVRoundTrips(t *testing.T) {
	set := core.TransactionSet{
		Currency: "USD",
		Transactions: []core.Transaction{
			{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Description: "Rent", Category: "Housing", Amount: -850, Type: core.Expense},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, set); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	fields := strings.Split(lines[1], ",")
	records := []core.RawRecord{{
		Date:        fields[0],
		Description: fields[1],
		Category:    fields[2],
		Type:        fields[3],
		Amount:      fields[4],
	}}

	out, err := core.Normalize(records)
	if err != nil {
		t.Fatalf("normalize exported row: %v", err)
	}
	got := out.Transactions[0]
	if got.Amount != -850 || got.Type != core.Expense || got.Category != "Housing" {
		t.Fatalf("round trip: %+v", got)
	}
}
