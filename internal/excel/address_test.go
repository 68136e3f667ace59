package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColumn(t *testing.T) {
	for input, want := range map[string]string{
		"C":  "C",
		"c":  "C",
		"aa": "AA",
	} {
		got, err := NormalizeColumn(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "C3", "4", "A B"} {
		_, err := NormalizeColumn(input)
		assert.Error(t, err, "expected %q to be rejected", input)
	}
}

func TestCellAddressAndColumnRange(t *testing.T) {
	assert.Equal(t, "C12", CellAddress("C", 12))
	assert.Equal(t, "C1:C50", ColumnRange("C", 1, 50))
}
