package excel

import (
	"context"
	"errors"
	"fmt"
)

// DocumentRef carries the stable storage coordinates of a workbook, as
// produced by document resolution. SiteID is empty for OneDrive-hosted files.
type DocumentRef struct {
	SiteID  string
	DriveID string
	ItemID  string
}

// Extent is the populated size of a worksheet.
type Extent struct {
	RowCount    int
	ColumnCount int
}

// WriteResult echoes what the store reports after a range write.
type WriteResult struct {
	Address     string
	RowCount    int
	ColumnCount int
}

// RangeStore is the remote workbook surface the core operates against. All
// calls block with a bounded timeout and are never retried automatically.
type RangeStore interface {
	GetUsedExtent(ctx context.Context, ref DocumentRef, sheet string) (Extent, error)
	ReadRange(ctx context.Context, ref DocumentRef, sheet, address string) ([][]CellValue, error)
	WriteRange(ctx context.Context, ref DocumentRef, sheet, address string, values [][]CellValue) (WriteResult, error)
}

// ErrEmptySheet distinguishes a worksheet with zero used rows from lookup
// misses and store failures.
var ErrEmptySheet = errors.New("worksheet has no used rows")

// CallerError marks malformed input rejected before any store call.
type CallerError struct {
	Reason string
}

func (e *CallerError) Error() string { return e.Reason }

// StoreError carries a non-2xx store response through verbatim.
type StoreError struct {
	StatusCode int
	Message    string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store request failed with status %d: %s", e.StatusCode, e.Message)
}
