package cif

import (
	"errors"
	"testing"
)

func TestValueStates(t *testing.T) {
	var absent Value
	empty := Str("")
	if !absent.IsAbsent() || absent.IsSet() {
		t.Error("zero Value should be absent")
	}
	if !Unknown.IsUnknown() || !Unknown.IsSet() || Unknown.IsPresent() {
		t.Error("Unknown should be set but not present")
	}
	if !empty.IsPresent() {
		t.Error("Str(\"\") should be present")
	}
	if absent == empty || absent == Unknown || empty == Unknown {
		t.Error("the three states must compare unequal")
	}
	if got := absent.Or(Str("x")); got != Str("x") {
		t.Errorf("Or on absent = %v", got)
	}
	if got := Unknown.Or(Str("x")); got != Unknown {
		t.Errorf("Or on unknown = %v", got)
	}
}

func TestValueAccessors(t *testing.T) {
	if n, err := Str(" 42 ").AsInt(); err != nil || n != 42 {
		t.Errorf("AsInt = %d, %v", n, err)
	}
	if _, err := Unknown.AsInt(); !errors.Is(err, ErrNoValue) {
		t.Errorf("AsInt(unknown) err = %v, want ErrNoValue", err)
	}
	if _, err := Str("4x").AsInt(); err == nil || errors.Is(err, ErrNoValue) {
		t.Errorf("AsInt(4x) err = %v, want parse error", err)
	}
	if f, err := Float(0.25).AsFloat(); err != nil || f != 0.25 {
		t.Errorf("AsFloat = %v, %v", f, err)
	}
	for _, s := range []string{"YES", "y", "True"} {
		if b, err := Str(s).AsBool(); err != nil || !b {
			t.Errorf("AsBool(%q) = %v, %v", s, b, err)
		}
	}
	if b, err := Bool(false).AsBool(); err != nil || b {
		t.Errorf("AsBool(NO) = %v, %v", b, err)
	}
	if got := OptStr(""); !got.IsAbsent() {
		t.Errorf("OptStr(\"\") = %#v, want absent", got)
	}
}
