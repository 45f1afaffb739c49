package google

import (
	"fmt"
	"strings"

	"findash/internal/core"
)

// recordsFromValues maps a header-led values matrix onto raw records. Header
// names are matched case-insensitively; cells beyond the header width are
// ignored and short rows pad with empty strings.
func recordsFromValues(values [][]interface{}) []core.RawRecord {
	if len(values) < 2 {
		return nil
	}

	idx := columnIndex(values[0])
	records := make([]core.RawRecord, 0, len(values)-1)
	for _, row := range values[1:] {
		records = append(records, core.RawRecord{
			Date:        cellAt(row, idx["date"]),
			Description: cellAt(row, idx["description"]),
			Category:    cellAt(row, idx["category"]),
			Amount:      cellAt(row, idx["amount"]),
			Type:        cellAt(row, idx["type"]),
		})
	}
	return records
}

func columnIndex(header []interface{}) map[string]int {
	idx := map[string]int{
		"date":        -1,
		"description": -1,
		"category":    -1,
		"amount":      -1,
		"type":        -1,
	}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(fmt.Sprint(cell)))
		if _, ok := idx[name]; ok && idx[name] == -1 {
			idx[name] = i
		}
	}
	return idx
}

func cellAt(row []interface{}, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}
