package units

import "fmt"

// UnknownUnitError is returned when a unit expression contains an undefined symbol.
type UnknownUnitError struct {
	Unit   string
	Symbol string
}

func (err UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q in %q", err.Symbol, err.Unit)
}

// InvalidUnitError is returned for a malformed unit expression or quantity.
type InvalidUnitError struct {
	Unit   string
	Reason string
}

func (err InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid unit %q: %s", err.Unit, err.Reason)
}

// IncompatibleUnitsError is returned when converting between units of different dimensions.
type IncompatibleUnitsError struct {
	From Unit
	To   Unit
}

func (err IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("cannot convert from %q (%s) to %q (%s)", err.From, err.From.Dimension(), err.To, err.To.Dimension())
}
