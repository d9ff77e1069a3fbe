// Package form is the generic, schema-driven form engine: a declarative
// field schema plus externally-owned state in, rendered form and change/
// submit handling out. One engine serves every entity shape.
package form

import (
	"fmt"
	"strconv"
	"strings"
)

type FieldType string

const (
	Text     FieldType = "text"
	Email    FieldType = "email"
	Password FieldType = "password"
	Textarea FieldType = "textarea"
	Select   FieldType = "select"
	Number   FieldType = "number"
	Checkbox FieldType = "checkbox"
)

type Option struct {
	Value string
	Label string
}

// Field describes one form input; the engine consumes an ordered
// sequence of these uniformly regardless of entity.
type Field struct {
	Name    string
	Label   string
	Type    FieldType
	Options []Option // select only; may be a live roster
	Help    string
	Rows    int // textarea only
}

type SubmitLabel struct {
	Idle       string
	Submitting string
}

// Value is a form field value: string, float64 (number fields) or bool
// (checkbox fields). Cleared number fields hold the empty string.
type Value interface{}

type Values map[string]Value

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// String formats a value for display; nil renders empty.
func (v Values) String(name string) string {
	switch val := v[name].(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}

// Empty reports whether a value counts as not filled in; whitespace-only
// text does.
func Empty(v Value) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}

// coerce applies the field-type coercion before a change reaches the
// state: number inputs become float64 (or stay empty), checkboxes bool.
func coerce(t FieldType, raw string) Value {
	switch t {
	case Number:
		if raw == "" {
			return ""
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ""
		}
		return n
	case Checkbox:
		return raw == "true" || raw == "on"
	}
	return raw
}
