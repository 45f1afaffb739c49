// Package ingest defines the inbound port for tabular transaction records.
package ingest

import (
	"context"

	"findash/internal/core"
)

// RecordSource supplies the raw batch for one load. Implementations do no
// validation; the normalizer is the single validation boundary.
type RecordSource interface {
	Fetch(ctx context.Context) ([]core.RawRecord, error)
}
