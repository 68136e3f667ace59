package trades

import (
	"strings"
	"time"

	"excel_trade_tracker/internal/excel"
)

// Time layouts accepted for open_time / close_time, tried in order.
var timeLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
	"15:04:05",
	"3:04:05 PM",
}

// maxSortDate pushes trades with unparsable open dates to the end of the
// batch instead of failing the sort.
var maxSortDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

const defaultExpiryCloseTime = "4:00 PM"

// TradeRecord is one semi-structured trade from a logTrades batch. Value
// fields are CellValues so numbers, strings, booleans and nulls all survive
// the trip from JSON to the worksheet untouched.
type TradeRecord struct {
	OpenDate       string          `json:"open_date"`
	OpenTime       string          `json:"open_time"`
	CloseDate      string          `json:"close_date"`
	CloseTime      string          `json:"close_time"`
	Strategy       string          `json:"strategy"`
	Credit         excel.CellValue `json:"credit"`
	Debit          excel.CellValue `json:"debit"`
	Contracts      excel.CellValue `json:"contracts"`
	OpenFees       excel.CellValue `json:"open_fees"`
	CloseFees      excel.CellValue `json:"close_fees"`
	SoldCallStrike excel.CellValue `json:"sold_call_strike"`
	SoldPutStrike  excel.CellValue `json:"sold_put_strike"`
	Width          excel.CellValue `json:"width"`
	Expired        excel.CellValue `json:"expired"`
}

// parseTimeOfDay returns the parsed time of day, or ok=false when no layout
// matches.
func parseTimeOfDay(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortKey derives the chronological ordering key (open date, then open time).
// Unparsable dates and times sort after everything parseable.
func (t TradeRecord) sortKey() (time.Time, int) {
	date, ok := excel.ParseDate(strings.TrimSpace(t.OpenDate))
	if !ok {
		date = maxSortDate
	}

	seconds := 24 * 60 * 60
	if tod, ok := parseTimeOfDay(t.OpenTime); ok {
		seconds = tod.Hour()*3600 + tod.Minute()*60 + tod.Second()
	}
	return date, seconds
}

// isTruthy applies the expired-flag convention: boolean true, or the string
// forms "true", "1" and "yes".
func isTruthy(v excel.CellValue) bool {
	switch strings.ToLower(strings.TrimSpace(v.String())) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// isExpired reports whether the trade should be treated as expired: either
// flagged explicitly, or closed out implicitly (no close date and a debit of
// exactly zero).
func (t TradeRecord) isExpired() bool {
	if isTruthy(t.Expired) {
		return true
	}
	if t.CloseDate == "" {
		if n, ok := t.Debit.Number(); ok && n == 0 {
			return true
		}
	}
	return false
}

// normalized returns a copy with the strategy mapped to its short code and
// the close fields of expired trades auto-derived: close date falls back to
// the open date, close time to 4:00 PM, and an unset debit becomes 0.
func (t TradeRecord) normalized() TradeRecord {
	out := t
	out.Strategy = MapStrategyName(t.Strategy)

	if t.isExpired() {
		if out.CloseDate == "" {
			out.CloseDate = out.OpenDate
		}
		if out.CloseTime == "" {
			out.CloseTime = defaultExpiryCloseTime
		}
		if out.Debit.IsNil() {
			out.Debit = excel.Number(0)
		}
	}
	return out
}

// orEmpty replaces an absent value with empty text so the fixed column
// alignment of the tracker row is preserved.
func orEmpty(v excel.CellValue) excel.CellValue {
	if v.IsNil() {
		return excel.Text("")
	}
	return v
}

// rowValues builds the fixed-order value array matching tradeColumns. Absent
// fields are written as empty values, never omitted.
func (t TradeRecord) rowValues() []excel.CellValue {
	return []excel.CellValue{
		excel.Text(t.OpenDate),
		excel.Text(t.OpenTime),
		excel.Text(t.CloseDate),
		excel.Text(t.CloseTime),
		excel.Text(t.Strategy),
		orEmpty(t.Credit),
		orEmpty(t.Debit),
		orEmpty(t.Contracts),
		orEmpty(t.OpenFees),
		orEmpty(t.CloseFees),
		orEmpty(t.SoldCallStrike),
		orEmpty(t.SoldPutStrike),
		orEmpty(t.Width),
	}
}
