package excel

import (
	"context"
	"fmt"
)

// mockStore is an in-memory RangeStore that counts every call so tests can
// assert how many remote operations an engine path would issue.
type mockStore struct {
	extent    Extent
	extentErr error
	column    []CellValue
	readErr   error
	failCells map[string]string // address -> error message

	calls      int
	writes     []string
	written    map[string]CellValue
}

func newMockStore(column ...CellValue) *mockStore {
	return &mockStore{
		extent:  Extent{RowCount: len(column), ColumnCount: 1},
		column:  column,
		written: make(map[string]CellValue),
	}
}

func (m *mockStore) GetUsedExtent(ctx context.Context, ref DocumentRef, sheet string) (Extent, error) {
	m.calls++
	if m.extentErr != nil {
		return Extent{}, m.extentErr
	}
	return m.extent, nil
}

func (m *mockStore) ReadRange(ctx context.Context, ref DocumentRef, sheet, address string) ([][]CellValue, error) {
	m.calls++
	if m.readErr != nil {
		return nil, m.readErr
	}
	rows := make([][]CellValue, len(m.column))
	for i, v := range m.column {
		rows[i] = []CellValue{v}
	}
	return rows, nil
}

func (m *mockStore) WriteRange(ctx context.Context, ref DocumentRef, sheet, address string, values [][]CellValue) (WriteResult, error) {
	m.calls++
	if msg, ok := m.failCells[address]; ok {
		return WriteResult{}, &StoreError{StatusCode: 400, Message: msg}
	}
	m.writes = append(m.writes, address)
	if len(values) > 0 && len(values[0]) > 0 {
		m.written[address] = values[0][0]
	}
	return WriteResult{Address: fmt.Sprintf("%s!%s", sheet, address), RowCount: 1, ColumnCount: 1}, nil
}
