package excel

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a CellValue holds.
type Kind int

const (
	KindNil Kind = iota
	KindNumber
	KindText
	KindBool
)

// CellValue is the closed union of scalar values a worksheet cell can hold.
// The zero value is the nil (empty) cell.
type CellValue struct {
	kind Kind
	num  float64
	text string
	b    bool
}

func Nil() CellValue             { return CellValue{} }
func Number(f float64) CellValue { return CellValue{kind: KindNumber, num: f} }
func Text(s string) CellValue    { return CellValue{kind: KindText, text: s} }
func Bool(b bool) CellValue      { return CellValue{kind: KindBool, b: b} }

func (v CellValue) Kind() Kind  { return v.kind }
func (v CellValue) IsNil() bool { return v.kind == KindNil }

// String returns the canonical string form used for equality comparison.
// Numbers render without trailing zeros so 25 and 25.0 compare equal.
func (v CellValue) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Number attempts a total numeric coercion: numbers as-is, text via
// strconv.ParseFloat. Booleans and nil cells do not coerce.
func (v CellValue) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// FromAny converts a decoded JSON scalar into a CellValue.
func FromAny(value interface{}) CellValue {
	switch val := value.(type) {
	case nil:
		return Nil()
	case float64:
		return Number(val)
	case int:
		return Number(float64(val))
	case string:
		return Text(val)
	case bool:
		return Bool(val)
	default:
		return Text(fmt.Sprintf("%v", val))
	}
}

// MarshalJSON writes the native JSON scalar for the variant.
func (v CellValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts any JSON scalar; arrays and objects are rejected.
func (v *CellValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.(type) {
	case nil, float64, string, bool:
		*v = FromAny(raw)
		return nil
	default:
		return fmt.Errorf("cell value must be a scalar, got %T", raw)
	}
}
