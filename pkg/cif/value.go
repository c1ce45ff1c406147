package cif

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoValue is returned by the typed accessors of [Value] when the value is
// absent or unknown.
var ErrNoValue = errors.New("value is absent or unknown")

type state uint8

const (
	stateAbsent state = iota
	stateUnknown
	statePresent
)

// Value is a single field value with the three states of the format:
// absent (the zero value), unknown, and present.
//
// Value is comparable; two Values are == when they have the same state and,
// if present, the same text.
type Value struct {
	text  string
	state state
}

// Unknown is the "?" marker: the field is present but its value is not known.
var Unknown = Value{state: stateUnknown}

// Str returns a present value holding s. Str("") is present and distinct
// from both the zero Value and Unknown.
func Str(s string) Value { return Value{text: s, state: statePresent} }

// Int returns a present value holding the decimal form of n.
func Int(n int) Value { return Str(strconv.Itoa(n)) }

// Float returns a present value holding the shortest decimal form of f.
func Float(f float64) Value { return Str(strconv.FormatFloat(f, 'f', -1, 64)) }

// Bool returns "YES" or "NO".
func Bool(b bool) Value {
	if b {
		return Str("YES")
	}
	return Str("NO")
}

// OptStr returns Str(s) for a non-empty s and the absent value otherwise.
func OptStr(s string) Value {
	if s == "" {
		return Value{}
	}
	return Str(s)
}

// IsAbsent reports whether the value was not supplied at all.
func (v Value) IsAbsent() bool { return v.state == stateAbsent }

// IsUnknown reports whether the value is the "?" marker.
func (v Value) IsUnknown() bool { return v.state == stateUnknown }

// IsPresent reports whether the value carries text (possibly empty).
func (v Value) IsPresent() bool { return v.state == statePresent }

// IsSet reports whether the value is present or unknown, i.e. whether a
// record that holds it should overwrite an attribute.
func (v Value) IsSet() bool { return v.state != stateAbsent }

// Text returns the text of a present value and "" otherwise.
func (v Value) Text() string { return v.text }

// Or returns v if it is set, otherwise fallback.
func (v Value) Or(fallback Value) Value {
	if v.IsSet() {
		return v
	}
	return fallback
}

// String renders the value the way it appears in a file, without quoting.
func (v Value) String() string {
	switch v.state {
	case stateUnknown:
		return "?"
	case statePresent:
		return v.text
	default:
		return "."
	}
}

// AsInt parses a present value as a decimal integer.
// It returns [ErrNoValue] for absent and unknown values.
func (v Value) AsInt() (int, error) {
	if !v.IsPresent() {
		return 0, ErrNoValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.text))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v.text)
	}
	return n, nil
}

// AsFloat parses a present value as a floating point number.
// It returns [ErrNoValue] for absent and unknown values.
func (v Value) AsFloat() (float64, error) {
	if !v.IsPresent() {
		return 0, ErrNoValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", v.text)
	}
	return f, nil
}

// AsBool parses YES/NO style flags (case-insensitive; also Y/N and
// TRUE/FALSE). It returns [ErrNoValue] for absent and unknown values.
func (v Value) AsBool() (bool, error) {
	if !v.IsPresent() {
		return false, ErrNoValue
	}
	switch strings.ToUpper(strings.TrimSpace(v.text)) {
	case "YES", "Y", "TRUE":
		return true, nil
	case "NO", "N", "FALSE":
		return false, nil
	}
	return false, fmt.Errorf("invalid flag %q", v.text)
}
