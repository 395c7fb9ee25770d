package dataset

import (
	"encoding/json"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindDate
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	}
	return ""
}

// Value is a normalized cell value: exactly one of null, number,
// ISO-8601 date string, or plain text. Downstream code switches on
// Kind instead of re-inspecting runtime types.
type Value struct {
	Kind Kind
	Num  float64 // set when Kind == KindNumber
	Str  string  // ISO timestamp for KindDate, raw text for KindText
}

// Null is the zero Value; absent row keys resolve to it.
var Null = Value{}

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func Date(iso string) Value  { return Value{Kind: KindDate, Str: iso} }
func Text(s string) Value    { return Value{Kind: KindText, Str: s} }

// IsNull reports whether the value is null or an empty text cell.
func (v Value) IsNull() bool {
	return v.Kind == KindNull || (v.Kind == KindText && v.Str == "")
}

// String renders the value the way it appears in frequency buckets
// and samples. Numbers drop trailing zeros; null renders empty.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate, KindText:
		return v.Str
	}
	return ""
}

// MarshalJSON emits the plain JSON form: null, a number, or a string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindDate, KindText:
		return json.Marshal(v.Str)
	}
	return []byte("null"), nil
}
