package excel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAllCellsSucceed(t *testing.T) {
	store := newMockStore(Text("anchor"))
	updater := NewUpdater(store)

	outcome, err := updater.Update(context.Background(), testRef, "January", 12,
		[]string{"C", "E", "I"},
		[]CellValue{Text("1/2/2026"), Text("9:30 AM"), Text("IC")})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Equal(t, 12, outcome.Row)
	assert.Equal(t, []string{"C12", "E12", "I12"}, outcome.Updated)
	assert.Empty(t, outcome.Failures)
	assert.Equal(t, Text("IC"), store.written["I12"])
	assert.Equal(t, 3, store.calls)
}

func TestUpdateContinuesPastFailedCell(t *testing.T) {
	store := newMockStore(Text("anchor"))
	store.failCells = map[string]string{"E12": "InvalidArgument: cell is protected"}
	updater := NewUpdater(store)

	outcome, err := updater.Update(context.Background(), testRef, "January", 12,
		[]string{"C", "E", "I"},
		[]CellValue{Text("1/2/2026"), Text("9:30 AM"), Text("IC")})
	require.NoError(t, err)

	assert.Equal(t, StatusPartialError, outcome.Status)
	assert.Equal(t, []string{"C12", "I12"}, outcome.Updated)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, "E12", outcome.Failures[0].Cell)
	assert.Contains(t, outcome.Failures[0].Message, "protected")
	// All three cells were attempted despite the middle one failing.
	assert.Equal(t, 3, store.calls)
}

func TestUpdateAllCellsFail(t *testing.T) {
	store := newMockStore(Text("anchor"))
	store.failCells = map[string]string{
		"C5": "boom",
		"E5": "boom",
	}
	updater := NewUpdater(store)

	outcome, err := updater.Update(context.Background(), testRef, "January", 5,
		[]string{"C", "E"}, []CellValue{Number(1), Number(2)})
	require.NoError(t, err)

	assert.Equal(t, StatusError, outcome.Status)
	assert.Empty(t, outcome.Updated)
	assert.Len(t, outcome.Failures, 2)
}

func TestUpdateLengthMismatchIssuesNoStoreCalls(t *testing.T) {
	store := newMockStore(Text("anchor"))
	updater := NewUpdater(store)

	outcome, err := updater.Update(context.Background(), testRef, "January", 12,
		[]string{"C", "E"}, []CellValue{Text("only one")})
	require.Error(t, err)

	var callerErr *CallerError
	assert.True(t, errors.As(err, &callerErr))
	assert.Equal(t, StatusError, outcome.Status)
	assert.Equal(t, 0, store.calls)
}

func TestUpdateRejectsRowBeforeFirst(t *testing.T) {
	store := newMockStore(Text("anchor"))
	updater := NewUpdater(store)

	_, err := updater.Update(context.Background(), testRef, "January", 0,
		[]string{"C"}, []CellValue{Text("x")})
	require.Error(t, err)

	var callerErr *CallerError
	assert.True(t, errors.As(err, &callerErr))
	assert.Equal(t, 0, store.calls)
}

func TestUpdateRecordsInvalidColumnAsFailure(t *testing.T) {
	store := newMockStore(Text("anchor"))
	updater := NewUpdater(store)

	outcome, err := updater.Update(context.Background(), testRef, "January", 3,
		[]string{"C", "42"}, []CellValue{Text("ok"), Text("bad")})
	require.NoError(t, err)

	assert.Equal(t, StatusPartialError, outcome.Status)
	assert.Equal(t, []string{"C3"}, outcome.Updated)
	require.Len(t, outcome.Failures, 1)
	// Only the valid cell reached the store.
	assert.Equal(t, 1, store.calls)
}
