package excel

import (
	"fmt"
	"strings"
)

// NormalizeColumn upper-cases a column letter and validates it is one or more
// letters A-Z.
func NormalizeColumn(column string) (string, error) {
	col := strings.ToUpper(strings.TrimSpace(column))
	if col == "" {
		return "", &CallerError{Reason: "column letter is required"}
	}
	for _, r := range col {
		if r < 'A' || r > 'Z' {
			return "", &CallerError{Reason: fmt.Sprintf("invalid column letter %q", column)}
		}
	}
	return col, nil
}

// CellAddress renders a single-cell range address such as "C12".
func CellAddress(column string, row int) string {
	return fmt.Sprintf("%s%d", strings.ToUpper(column), row)
}

// ColumnRange renders a single-column range address such as "C1:C50".
func ColumnRange(column string, firstRow, lastRow int) string {
	col := strings.ToUpper(column)
	return fmt.Sprintf("%s%d:%s%d", col, firstRow, col, lastRow)
}
