package excel

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// sampleLimit caps how many column values a failed lookup reports back.
const sampleLimit = 10

// LookupResult reports where a reference value was found, or carries sample
// values from the scanned column when it was not.
type LookupResult struct {
	Found   bool
	Row     int // 1-based
	Samples []string
}

// Locator scans a worksheet column for the first row matching a reference
// value under date-aware equivalence.
type Locator struct {
	store RangeStore
}

func NewLocator(store RangeStore) *Locator {
	return &Locator{store: store}
}

// Locate reads the full search column up to the used extent and returns the
// first equivalent row. A miss is not an error: the result carries up to ten
// sample values so the caller can see what the column actually holds.
func (l *Locator) Locate(ctx context.Context, ref DocumentRef, sheet, searchColumn, referenceValue string) (LookupResult, error) {
	column, err := NormalizeColumn(searchColumn)
	if err != nil {
		return LookupResult{}, err
	}

	extent, err := l.store.GetUsedExtent(ctx, ref, sheet)
	if err != nil {
		return LookupResult{}, fmt.Errorf("failed to get used extent of sheet %q: %w", sheet, err)
	}
	if extent.RowCount < 1 {
		return LookupResult{}, fmt.Errorf("sheet %q: %w", sheet, ErrEmptySheet)
	}

	address := ColumnRange(column, 1, extent.RowCount)
	rows, err := l.store.ReadRange(ctx, ref, sheet, address)
	if err != nil {
		return LookupResult{}, fmt.Errorf("failed to read column %s of sheet %q: %w", column, sheet, err)
	}

	log.Debug().
		Str("sheet", sheet).
		Str("column", column).
		Int("rows", len(rows)).
		Str("reference", referenceValue).
		Msg("Scanning column for reference value")

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if ValuesEquivalent(row[0], referenceValue) {
			log.Debug().
				Int("row", i+1).
				Str("reference", referenceValue).
				Msg("Reference value matched")
			return LookupResult{Found: true, Row: i + 1}, nil
		}
	}

	samples := make([]string, 0, sampleLimit)
	for _, row := range rows {
		if len(samples) == sampleLimit {
			break
		}
		if len(row) > 0 {
			samples = append(samples, row[0].String())
		}
	}

	log.Debug().
		Str("sheet", sheet).
		Str("column", column).
		Str("reference", referenceValue).
		Int("samples", len(samples)).
		Msg("Reference value not found in column")

	return LookupResult{Found: false, Samples: samples}, nil
}
