// Package export writes the current transaction set back out as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"findash/internal/core"
)

var header = []string{"Date", "Description", "Category", "Type", "Amount"}

// Filename returns the download name for an export taken at the given time,
// for example financial_data_20240115.csv.
func Filename(now time.Time) string {
	return "financial_data_" + now.Format("20060102") + ".csv"
}

// WriteCSV writes the set with a header row. Amounts keep their sign and two
// decimals, without grouping separators, so the file round-trips through the
// normalizer.
func WriteCSV(w io.Writer, set core.TransactionSet) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range set.Transactions {
		row := []string{
			t.Date.Format("2006-01-02"),
			t.Description,
			t.Category,
			string(t.Type),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
