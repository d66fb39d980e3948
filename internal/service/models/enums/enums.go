package enums

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Flag is a y/n enum used for the shipping flags (is_domestic, is_express,
// is_additional). The empty value means the flag has not been set yet.
type Flag string

const (
	FlagYes Flag = "y"
	FlagNo  Flag = "n"
)

// InvalidEnumValueError is returned when a value cannot be normalized to y/n.
type InvalidEnumValueError struct {
	Value interface{}
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid enum value: %v", e.Value)
}

func (f Flag) String() string {
	return string(f)
}

// IsSet reports whether the flag holds one of the defined enum values.
func (f Flag) IsSet() bool {
	return f == FlagYes || f == FlagNo
}

func (f Flag) Value() (driver.Value, error) {
	if !f.IsSet() {
		return nil, nil
	}

	return f.String(), nil
}

// ParseFlag normalizes boolean-like input to a Flag. Accepts bools, Flag
// values and the strings "y"/"n" in any case.
func ParseFlag(v interface{}) (Flag, error) {
	switch val := v.(type) {
	case bool:
		if val {
			return FlagYes, nil
		}

		return FlagNo, nil
	case Flag:
		if val.IsSet() {
			return val, nil
		}
	case string:
		switch strings.ToLower(val) {
		case "y":
			return FlagYes, nil
		case "n":
			return FlagNo, nil
		}
	}

	return "", &InvalidEnumValueError{Value: v}
}
