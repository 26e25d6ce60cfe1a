package pool

import (
	"fmt"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// TypeCoercionError is returned when a raw string cannot be converted by the item's strategy.
type TypeCoercionError struct {
	Err      error
	Value    string
	Item     string
	Hint     string
	Coercion Coercion
}

func (err TypeCoercionError) Error() string {
	msg := fmt.Sprintf("DataItem %q: could not apply str2type=%s to value %q", err.Item, err.Coercion, err.Value)

	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}

	if err.Hint != "" {
		msg += "\n" + err.Hint
	}

	return msg
}

func (err TypeCoercionError) Unwrap() error {
	return err.Err
}

// RangeError is returned when a value is outside the item's minmax interval.
type RangeError struct {
	Value any
	Item  string
	Min   float64
	Max   float64
}

func (err RangeError) Error() string {
	return fmt.Sprintf("DataItem %q: value=%v not in [%v, %v]", err.Item, err.Value, err.Min, err.Max)
}

// OptionError is returned when a value is not one of the item's options.
type OptionError struct {
	Value   any
	Item    string
	Options []any
}

func (err OptionError) Error() string {
	return fmt.Sprintf("DataItem %q: wrong value=%v not in %v", err.Item, err.Value, err.Options)
}

// ValidationError is returned when a user validation function rejects a value.
type ValidationError struct {
	Value any
	Item  string
}

func (err ValidationError) Error() string {
	return fmt.Sprintf("%s = %v: validate function claims invalid value", err.Item, err.Value)
}

// IsRangeOrOptionError returns true if err rejects a value for its domain rather than its type.
func IsRangeOrOptionError(err error) bool {
	var (
		rangeErr      RangeError
		optionErr     OptionError
		validationErr ValidationError
	)

	return errors.As(err, &rangeErr) || errors.As(err, &optionErr) || errors.As(err, &validationErr)
}

// UnitIncompatibilityError is returned when a value carries a unit that cannot be
// converted to the unit registered on the item.
type UnitIncompatibilityError struct {
	Err        error
	Item       string
	Value      string
	Unit       string
	Registered string
}

func (err UnitIncompatibilityError) Error() string {
	if err.Registered == "" {
		return fmt.Sprintf("DataItem %q: value=%s, unit %s is not valid: %v", err.Item, err.Value, err.Unit, err.Err)
	}

	return fmt.Sprintf("DataItem %q: value=%s, unit %s is not compatible with registered unit %s", err.Item, err.Value, err.Unit, err.Registered)
}

func (err UnitIncompatibilityError) Unwrap() error {
	return err.Err
}

// InvalidAttributeError is returned when an item is declared with an unknown or malformed attribute.
type InvalidAttributeError struct {
	Item      string
	Attribute string
	Reason    string
}

func (err InvalidAttributeError) Error() string {
	if err.Attribute == "" {
		return fmt.Sprintf("DataItem %q: %s", err.Item, err.Reason)
	}

	return fmt.Sprintf("DataItem %q: attribute %s %s", err.Item, err.Attribute, err.Reason)
}

// NotFinalizedError is returned by lookups before Update has built the path index.
type NotFinalizedError struct {
	Name string
}

func (err NotFinalizedError) Error() string {
	return fmt.Sprintf("get(%q) does not work because pool construction is not finalized with Update()", err.Name)
}

// NoUnitError is returned when a quantity is requested from an item without a unit.
type NoUnitError struct {
	Item string
}

func (err NoUnitError) Error() string {
	return fmt.Sprintf("unit is not registered for %q", err.Item)
}
