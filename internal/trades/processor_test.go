package trades

import (
	"context"
	"fmt"
	"testing"
	"time"

	"excel_trade_tracker/internal/excel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRef = excel.DocumentRef{SiteID: "site-1", DriveID: "drive-1", ItemID: "item-1"}

// mockStore serves a fixed anchor column and records every write so tests can
// assert which rows a batch landed in.
type mockStore struct {
	column    []excel.CellValue
	failCells map[string]string

	calls   int
	written map[string]excel.CellValue
}

func newMockStore(column ...excel.CellValue) *mockStore {
	return &mockStore{column: column, written: make(map[string]excel.CellValue)}
}

func (m *mockStore) GetUsedExtent(ctx context.Context, ref excel.DocumentRef, sheet string) (excel.Extent, error) {
	m.calls++
	return excel.Extent{RowCount: len(m.column), ColumnCount: 17}, nil
}

func (m *mockStore) ReadRange(ctx context.Context, ref excel.DocumentRef, sheet, address string) ([][]excel.CellValue, error) {
	m.calls++
	rows := make([][]excel.CellValue, len(m.column))
	for i, v := range m.column {
		rows[i] = []excel.CellValue{v}
	}
	return rows, nil
}

func (m *mockStore) WriteRange(ctx context.Context, ref excel.DocumentRef, sheet, address string, values [][]excel.CellValue) (excel.WriteResult, error) {
	m.calls++
	if msg, ok := m.failCells[address]; ok {
		return excel.WriteResult{}, &excel.StoreError{StatusCode: 400, Message: msg}
	}
	if len(values) > 0 && len(values[0]) > 0 {
		m.written[address] = values[0][0]
	}
	return excel.WriteResult{Address: fmt.Sprintf("%s!%s", sheet, address), RowCount: 1, ColumnCount: 1}, nil
}

func TestLogTradesChronologicalOrder(t *testing.T) {
	// Anchor value sits at row 3; trades land at rows 4, 5, 6.
	store := newMockStore(excel.Text("Date"), excel.Text("12/21/2025"), excel.Text("12/22/2025"))
	processor := NewProcessor(store)

	batch := []TradeRecord{
		{OpenDate: "1/3/2026", OpenTime: "9:00 AM", CloseDate: "1/4/2026", Strategy: "IC"},
		{OpenDate: "1/2/2026", OpenTime: "3:00 PM", CloseDate: "1/4/2026", Strategy: "CSP"},
		{OpenDate: "1/3/2026", OpenTime: "8:00 AM", CloseDate: "1/4/2026", Strategy: "VPCS"},
	}

	outcome := processor.LogTrades(context.Background(), testRef, batch, "12/22/2025", "December")

	assert.Equal(t, excel.StatusSuccess, outcome.Status)
	assert.Equal(t, "12/22/2025", outcome.ReferenceDate)
	require.Len(t, outcome.Logged, 3)
	assert.Empty(t, outcome.Failed)

	// Earliest open moment first: 1/2 3PM, then 1/3 8AM, then 1/3 9AM.
	assert.Equal(t, 1, outcome.Logged[0].Index)
	assert.Equal(t, 4, outcome.Logged[0].Row)
	assert.Equal(t, "CSP", outcome.Logged[0].Strategy)
	assert.Equal(t, 5, outcome.Logged[1].Row)
	assert.Equal(t, "VPCS", outcome.Logged[1].Strategy)
	assert.Equal(t, 6, outcome.Logged[2].Row)
	assert.Equal(t, "IC", outcome.Logged[2].Strategy)

	assert.Equal(t, excel.Text("1/2/2026"), store.written["C4"])
	assert.Equal(t, excel.Text("1/3/2026"), store.written["C6"])
	assert.Equal(t, excel.Text("IC"), store.written["I6"])
}

func TestLogTradesDerivesReferenceDateFromSerial(t *testing.T) {
	serial := float64(excel.DateToSerial(time.Date(2025, time.December, 22, 0, 0, 0, 0, time.UTC)))
	store := newMockStore(excel.Text("Date"), excel.Number(serial))
	processor := NewProcessor(store)

	batch := []TradeRecord{
		{OpenDate: "1/2/2026", OpenTime: "9:30 AM", CloseDate: "1/3/2026", Strategy: "IC"},
	}

	outcome := processor.LogTrades(context.Background(), testRef, batch, "", "December")

	assert.Equal(t, excel.StatusSuccess, outcome.Status)
	assert.Equal(t, "12/22/2025", outcome.ReferenceDate)
	require.Len(t, outcome.Logged, 1)
	// The serial cell is row 2, so the trade lands at row 3.
	assert.Equal(t, 3, outcome.Logged[0].Row)
}

func TestLogTradesEmptyBatchWarns(t *testing.T) {
	store := newMockStore(excel.Text("12/22/2025"))
	processor := NewProcessor(store)

	outcome := processor.LogTrades(context.Background(), testRef, nil, "12/22/2025", "December")

	assert.Equal(t, StatusWarning, outcome.Status)
	assert.Empty(t, outcome.Logged)
	assert.Equal(t, 0, store.calls)
}

func TestLogTradesDefaultSheetIsCurrentMonth(t *testing.T) {
	store := newMockStore()
	processor := NewProcessor(store)

	outcome := processor.LogTrades(context.Background(), testRef, nil, "", "")
	assert.Equal(t, time.Now().Month().String(), outcome.Sheet)
}

func TestLogTradesMissingAnchorFailsAllTrades(t *testing.T) {
	store := newMockStore(excel.Text("Date"), excel.Text("12/21/2025"))
	processor := NewProcessor(store)

	batch := []TradeRecord{
		{OpenDate: "1/2/2026", OpenTime: "9:30 AM", CloseDate: "1/3/2026", Strategy: "IC"},
	}

	outcome := processor.LogTrades(context.Background(), testRef, batch, "12/22/2025", "December")

	assert.Equal(t, excel.StatusError, outcome.Status)
	assert.Empty(t, outcome.Logged)
	require.Len(t, outcome.Failed, 1)
	assert.Contains(t, outcome.Failed[0].Message, "12/21/2025")
	assert.Empty(t, store.written)
}

func TestLogTradesNoDatedRowsNothingAttempted(t *testing.T) {
	store := newMockStore(excel.Text("Header"), excel.Text("also not a date"))
	processor := NewProcessor(store)

	batch := []TradeRecord{
		{OpenDate: "1/2/2026", OpenTime: "9:30 AM", CloseDate: "1/3/2026", Strategy: "IC"},
	}

	outcome := processor.LogTrades(context.Background(), testRef, batch, "", "December")

	assert.Equal(t, excel.StatusError, outcome.Status)
	assert.Empty(t, outcome.Logged)
	assert.Empty(t, outcome.Failed)
	assert.Empty(t, store.written)
}

func TestLogTradesPartialSuccess(t *testing.T) {
	store := newMockStore(excel.Text("12/22/2025"))
	// Fail every cell write of the second trade's row.
	store.failCells = make(map[string]string)
	for _, col := range tradeColumns {
		store.failCells[col+"3"] = "InvalidArgument"
	}
	processor := NewProcessor(store)

	batch := []TradeRecord{
		{OpenDate: "1/2/2026", OpenTime: "9:00 AM", CloseDate: "1/3/2026", Strategy: "IC"},
		{OpenDate: "1/2/2026", OpenTime: "10:00 AM", CloseDate: "1/3/2026", Strategy: "CSP"},
	}

	outcome := processor.LogTrades(context.Background(), testRef, batch, "12/22/2025", "December")

	assert.Equal(t, StatusPartialSuccess, outcome.Status)
	require.Len(t, outcome.Logged, 1)
	require.Len(t, outcome.Failed, 1)
	assert.Equal(t, 3, outcome.Failed[0].Row)
	assert.Equal(t, excel.StatusError, outcome.Failed[0].Status)
	assert.Len(t, outcome.Failed[0].Failures, len(tradeColumns))
}
