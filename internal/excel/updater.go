package excel

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Aggregated outcome statuses for multi-cell and multi-trade operations.
const (
	StatusSuccess      = "success"
	StatusPartialError = "partial_error"
	StatusError        = "error"
)

// CellFailure records one failed cell write.
type CellFailure struct {
	Cell    string `json:"cell"`
	Message string `json:"message"`
}

// UpdateOutcome aggregates per-cell write results for one target row.
type UpdateOutcome struct {
	Status   string        `json:"status"`
	Row      int           `json:"row,omitempty"`
	Updated  []string      `json:"updated_cells"`
	Failures []CellFailure `json:"failed_cells,omitempty"`
}

// Updater writes sets of (column, value) pairs into a single row as
// independent per-cell patches.
type Updater struct {
	store RangeStore
}

func NewUpdater(store RangeStore) *Updater {
	return &Updater{store: store}
}

// Update writes values[i] into columns[i] of targetRow. Every cell is
// attempted regardless of earlier failures; the store offers no multi-cell
// transaction, so partial progress with full diagnostics beats all-or-nothing.
// A column/value length mismatch is a caller error and issues no store calls.
func (u *Updater) Update(ctx context.Context, ref DocumentRef, sheet string, targetRow int, columns []string, values []CellValue) (UpdateOutcome, error) {
	if len(columns) != len(values) {
		return UpdateOutcome{Status: StatusError}, &CallerError{
			Reason: fmt.Sprintf("target_columns and values must have the same length (got %d columns, %d values)", len(columns), len(values)),
		}
	}
	if targetRow < 1 {
		return UpdateOutcome{Status: StatusError}, &CallerError{
			Reason: fmt.Sprintf("target row %d is before the first row", targetRow),
		}
	}

	outcome := UpdateOutcome{Row: targetRow, Updated: []string{}}
	for i, rawColumn := range columns {
		column, err := NormalizeColumn(rawColumn)
		if err != nil {
			outcome.Failures = append(outcome.Failures, CellFailure{
				Cell:    CellAddress(rawColumn, targetRow),
				Message: err.Error(),
			})
			continue
		}

		address := CellAddress(column, targetRow)
		_, err = u.store.WriteRange(ctx, ref, sheet, address, [][]CellValue{{values[i]}})
		if err != nil {
			log.Error().
				Err(err).
				Str("sheet", sheet).
				Str("cell", address).
				Msg("Failed to update cell")
			outcome.Failures = append(outcome.Failures, CellFailure{Cell: address, Message: err.Error()})
			continue
		}

		log.Debug().
			Str("sheet", sheet).
			Str("cell", address).
			Str("value", values[i].String()).
			Msg("Updated cell")
		outcome.Updated = append(outcome.Updated, address)
	}

	switch {
	case len(outcome.Failures) == 0:
		outcome.Status = StatusSuccess
	case len(outcome.Updated) > 0:
		outcome.Status = StatusPartialError
	default:
		outcome.Status = StatusError
	}
	return outcome, nil
}
