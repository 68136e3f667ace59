package excel

import (
	"math"
	"regexp"
	"time"
)

// Accepted date layouts, tried in priority order. The first successful parse
// wins even when a later layout would also match; the order is a contract.
var dateLayouts = []string{
	"01/02/2006", // MM/DD/YYYY
	"2006-01-02", // YYYY-MM-DD
	"02-01-2006", // DD-MM-YYYY
	"01-02-2006", // MM-DD-YYYY
	"2006/01/02", // YYYY/MM/DD
}

// Shape patterns for LooksLikeDate. These gate the date-serial comparison in
// ValuesEquivalent without committing to a full parse.
var dateShapes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),
}

// serialEpoch is day 0 of the workbook date-serial numbering: the calendar day
// immediately before serial 1 (1900-01-01). No leap-year correction is applied,
// so serial N is always epoch + N days.
var serialEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)

// Serial bounds accepted as calendar dates (through year 9999).
const (
	MinDateSerial = 1
	MaxDateSerial = 2958465
)

// ParseDate parses free-form date text against the accepted layouts in order.
// The second return is false when no layout matches.
func ParseDate(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// LooksLikeDate reports whether text has the shape of an accepted date format.
func LooksLikeDate(text string) bool {
	for _, shape := range dateShapes {
		if shape.MatchString(text) {
			return true
		}
	}
	return false
}

// DateToSerial returns the day-count of d from the serial epoch.
func DateToSerial(d time.Time) int {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(serialEpoch).Hours() / 24)
}

// SerialToDate is the inverse of DateToSerial; fractional days truncate.
func SerialToDate(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(serial))
}

// ValuesEquivalent decides whether a worksheet cell and a caller-supplied
// reference denote the same logical value. Three tiers, first applicable wins:
//  1. exact string-form equality
//  2. reference parses as a date and the cell holds a plausible date serial:
//     compare floor(cell) against the reference's serial
//  3. both coerce to numbers: numeric equality
func ValuesEquivalent(cell CellValue, reference string) bool {
	if cell.String() == reference {
		return true
	}

	if LooksLikeDate(reference) {
		if refDate, ok := ParseDate(reference); ok {
			if n, ok := cell.Number(); ok && n >= MinDateSerial && n <= MaxDateSerial {
				return int(math.Floor(n)) == DateToSerial(refDate)
			}
		}
	}

	cellNum, cellOK := cell.Number()
	refNum, refOK := Text(reference).Number()
	if cellOK && refOK {
		return cellNum == refNum
	}

	return false
}
