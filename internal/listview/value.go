package listview

import (
	"cmp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the type carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindDecimal
	KindDate
	KindBool
)

// DateLayout is used when a date value is rendered or searched.
const DateLayout = "2006-01-02"

// Value is a single field value read through a schema accessor.
type Value struct {
	kind Kind
	text string
	num  float64
	dec  decimal.Decimal
	date time.Time
	flag bool
}

// Null is the missing value.
func Null() Value { return Value{} }

// Text wraps a string.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// OptionalText returns Null for a nil pointer.
func OptionalText(s *string) Value {
	if s == nil {
		return Null()
	}
	return Text(*s)
}

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Int wraps an integer as a Number.
func Int(n int64) Value { return Number(float64(n)) }

// Decimal wraps a decimal amount.
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// Date wraps a timestamp. The zero time is treated as Null.
func Date(t time.Time) Value {
	if t.IsZero() {
		return Null()
	}
	return Value{kind: KindDate, date: t}
}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind reports the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Time returns the timestamp of a date value.
func (v Value) Time() time.Time { return v.date }

// String renders the value the way it is displayed and searched.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDecimal:
		return v.dec.String()
	case KindDate:
		return v.date.Format(DateLayout)
	case KindBool:
		if v.flag {
			return "yes"
		}
		return "no"
	default:
		return ""
	}
}

// Compare orders two values. A null compares as "" against text, so it ties
// with an empty string, and sorts before any other present value. Values of
// different kinds fall back to their string form.
func Compare(a, b Value) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull() && b.kind == KindText:
		return strings.Compare("", b.text)
	case b.IsNull() && a.kind == KindText:
		return strings.Compare(a.text, "")
	case a.IsNull():
		return -1
	case b.IsNull():
		return 1
	}
	if a.kind != b.kind {
		return strings.Compare(a.String(), b.String())
	}
	switch a.kind {
	case KindNumber:
		return cmp.Compare(a.num, b.num)
	case KindDecimal:
		return a.dec.Cmp(b.dec)
	case KindDate:
		return a.date.Compare(b.date)
	case KindBool:
		switch {
		case a.flag == b.flag:
			return 0
		case !a.flag:
			return -1
		default:
			return 1
		}
	default:
		return strings.Compare(a.text, b.text)
	}
}
