package trades

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"excel_trade_tracker/internal/excel"

	"github.com/rs/zerolog/log"
)

// anchorColumn holds the open-date column of the tracker template. It is both
// the lookup column and the column scanned for the default reference date.
const anchorColumn = "C"

// tradeColumns is the tracker template's column layout. Positions are a
// contract with the destination spreadsheet and must not be reordered:
// open date, open time, close date, close time, strategy, credit, debit,
// contracts, open fees, close fees, sold call strike, sold put strike, width.
var tradeColumns = []string{"C", "E", "F", "G", "I", "J", "K", "L", "M", "N", "O", "P", "Q"}

// Batch outcome statuses beyond the per-row set in the excel package.
const (
	StatusPartialSuccess = "partial_success"
	StatusWarning        = "warning"
)

// TradeOutcome is the per-trade result, keyed by the trade's position in the
// chronologically sorted batch (1-based, equal to its row offset).
type TradeOutcome struct {
	Index    int                 `json:"trade_index"`
	Status   string              `json:"status"`
	Row      int                 `json:"row,omitempty"`
	Strategy string              `json:"strategy,omitempty"`
	Updated  []string            `json:"updated_cells,omitempty"`
	Failures []excel.CellFailure `json:"failed_cells,omitempty"`
	Message  string              `json:"message,omitempty"`
}

// BatchOutcome aggregates a whole logTrades invocation.
type BatchOutcome struct {
	Status        string         `json:"status"`
	Message       string         `json:"message,omitempty"`
	Sheet         string         `json:"sheet_name,omitempty"`
	ReferenceDate string         `json:"reference_date,omitempty"`
	Logged        []TradeOutcome `json:"logged"`
	Failed        []TradeOutcome `json:"failed,omitempty"`
}

// Processor drives the row locator and updater once per trade.
type Processor struct {
	store   excel.RangeStore
	locator *excel.Locator
	updater *excel.Updater
}

func NewProcessor(store excel.RangeStore) *Processor {
	return &Processor{
		store:   store,
		locator: excel.NewLocator(store),
		updater: excel.NewUpdater(store),
	}
}

// LogTrades appends a batch of trades below the anchor row of the tracker
// sheet. Trades land in chronological order at offsets 1, 2, 3, ... from the
// row whose anchor-column value matches referenceDate. An empty referenceDate
// is derived from the last dated row of the sheet; an empty sheet name
// defaults to the current month.
func (p *Processor) LogTrades(ctx context.Context, ref excel.DocumentRef, batch []TradeRecord, referenceDate, sheet string) BatchOutcome {
	if sheet == "" {
		sheet = time.Now().Month().String()
	}

	if len(batch) == 0 {
		return BatchOutcome{
			Status:  StatusWarning,
			Message: "no trades supplied; nothing was attempted",
			Sheet:   sheet,
			Logged:  []TradeOutcome{},
		}
	}

	trades := make([]TradeRecord, len(batch))
	copy(trades, batch)
	sort.SliceStable(trades, func(i, j int) bool {
		di, si := trades[i].sortKey()
		dj, sj := trades[j].sortKey()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return si < sj
	})

	if referenceDate == "" {
		derived, err := p.findLastDatedRow(ctx, ref, sheet)
		if err != nil {
			log.Error().Err(err).Str("sheet", sheet).Msg("Failed to derive reference date")
			return BatchOutcome{
				Status:  excel.StatusError,
				Message: fmt.Sprintf("no reference_date supplied and none could be derived from column %s of sheet %q: %v", anchorColumn, sheet, err),
				Sheet:   sheet,
				Logged:  []TradeOutcome{},
			}
		}
		referenceDate = derived
		log.Debug().Str("sheet", sheet).Str("reference_date", referenceDate).Msg("Derived reference date from sheet")
	}

	outcome := BatchOutcome{
		Sheet:         sheet,
		ReferenceDate: referenceDate,
		Logged:        []TradeOutcome{},
	}

	for i, raw := range trades {
		offset := i + 1
		trade := raw.normalized()

		result := p.logOne(ctx, ref, sheet, referenceDate, offset, trade)
		if result.Status == excel.StatusSuccess {
			outcome.Logged = append(outcome.Logged, result)
		} else {
			outcome.Failed = append(outcome.Failed, result)
		}
	}

	switch {
	case len(outcome.Failed) == 0:
		outcome.Status = excel.StatusSuccess
		outcome.Message = fmt.Sprintf("logged %d trades to sheet %q", len(outcome.Logged), sheet)
	case len(outcome.Logged) > 0:
		outcome.Status = StatusPartialSuccess
		outcome.Message = fmt.Sprintf("logged %d of %d trades to sheet %q", len(outcome.Logged), len(trades), sheet)
	default:
		outcome.Status = excel.StatusError
		outcome.Message = fmt.Sprintf("failed to log all %d trades to sheet %q", len(trades), sheet)
	}

	log.Info().
		Str("sheet", sheet).
		Str("status", outcome.Status).
		Int("logged", len(outcome.Logged)).
		Int("failed", len(outcome.Failed)).
		Msg("Trade batch complete")

	return outcome
}

// logOne locates the anchor row and writes one trade at anchor + offset.
func (p *Processor) logOne(ctx context.Context, ref excel.DocumentRef, sheet, referenceDate string, offset int, trade TradeRecord) TradeOutcome {
	lookup, err := p.locator.Locate(ctx, ref, sheet, anchorColumn, referenceDate)
	if err != nil {
		return TradeOutcome{
			Index:    offset,
			Status:   excel.StatusError,
			Strategy: trade.Strategy,
			Message:  fmt.Sprintf("lookup failed: %v", err),
		}
	}
	if !lookup.Found {
		return TradeOutcome{
			Index:    offset,
			Status:   excel.StatusError,
			Strategy: trade.Strategy,
			Message: fmt.Sprintf("reference date %q not found in column %s (sample values: %s)",
				referenceDate, anchorColumn, strings.Join(lookup.Samples, ", ")),
		}
	}

	targetRow := lookup.Row + offset
	update, err := p.updater.Update(ctx, ref, sheet, targetRow, tradeColumns, trade.rowValues())
	if err != nil {
		return TradeOutcome{
			Index:    offset,
			Status:   excel.StatusError,
			Row:      targetRow,
			Strategy: trade.Strategy,
			Message:  err.Error(),
		}
	}

	return TradeOutcome{
		Index:    offset,
		Status:   update.Status,
		Row:      targetRow,
		Strategy: trade.Strategy,
		Updated:  update.Updated,
		Failures: update.Failures,
	}
}

// findLastDatedRow scans the anchor column from the bottom up and returns the
// first value usable as a reference date: a numeric date serial (reformatted
// as MM/DD/YYYY) or a string that parses as a date.
func (p *Processor) findLastDatedRow(ctx context.Context, ref excel.DocumentRef, sheet string) (string, error) {
	extent, err := p.store.GetUsedExtent(ctx, ref, sheet)
	if err != nil {
		return "", fmt.Errorf("failed to get used extent: %w", err)
	}
	if extent.RowCount < 1 {
		return "", excel.ErrEmptySheet
	}

	rows, err := p.store.ReadRange(ctx, ref, sheet, excel.ColumnRange(anchorColumn, 1, extent.RowCount))
	if err != nil {
		return "", fmt.Errorf("failed to read column %s: %w", anchorColumn, err)
	}

	for i := len(rows) - 1; i >= 0; i-- {
		if len(rows[i]) == 0 {
			continue
		}
		cell := rows[i][0]
		if cell.IsNil() || cell.String() == "" {
			continue
		}
		if n, ok := cell.Number(); ok {
			if n >= excel.MinDateSerial && n <= excel.MaxDateSerial {
				return excel.SerialToDate(n).Format("01/02/2006"), nil
			}
			continue
		}
		if _, ok := excel.ParseDate(cell.String()); ok {
			return cell.String(), nil
		}
	}

	return "", fmt.Errorf("no dated rows in column %s", anchorColumn)
}
