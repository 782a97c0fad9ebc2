package settings

import (
	"strconv"
	"strings"
)

type valueKind int

const (
	kindNone valueKind = iota
	kindString
	kindBool
	kindList
)

// Value is the typed value of a single settings row. The zero Value renders
// as an empty cell.
type Value struct {
	kind  valueKind
	str   string
	b     bool
	items []string
}

func StringValue(s string) Value {
	return Value{kind: kindString, str: s}
}

func BoolValue(b bool) Value {
	return Value{kind: kindBool, b: b}
}

func ListValue(items []string) Value {
	return Value{kind: kindList, items: items}
}

// IsList reports whether the value renders as a bullet list.
func (v Value) IsList() bool {
	return v.kind == kindList
}

// Items returns list elements in input order, nil for scalar values.
func (v Value) Items() []string {
	if v.kind != kindList {
		return nil
	}
	return v.items
}

// IsZero reports whether the value is absent, an empty string or an empty
// list. A false boolean is not zero.
func (v Value) IsZero() bool {
	switch v.kind {
	case kindString:
		return v.str == ""
	case kindBool:
		return false
	case kindList:
		return len(v.items) == 0
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case kindString:
		return v.str
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindList:
		return strings.Join(v.items, ", ")
	default:
		return ""
	}
}
