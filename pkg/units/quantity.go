package units

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gruntwork-io/parampool/internal/errors"
)

var quantityRegexp = regexp.MustCompile(`^\s*([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\s*(.*?)\s*$`)

// Quantity is a number with a unit.
type Quantity struct {
	unit  Unit
	value float64
}

// NewQuantity returns value measured in unit.
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{value: value, unit: unit}
}

// ParseQuantity parses "18 km/h", "1.2e3 kg/m**3" or a plain number.
func ParseQuantity(str string) (Quantity, error) {
	match := quantityRegexp.FindStringSubmatch(str)
	if match == nil {
		return Quantity{}, errors.New(InvalidUnitError{Unit: str, Reason: "not a number followed by a unit"})
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Quantity{}, errors.New(InvalidUnitError{Unit: str, Reason: err.Error()})
	}

	unit, err := ParseUnit(match[2])
	if err != nil {
		return Quantity{}, err
	}

	return Quantity{value: value, unit: unit}, nil
}

func (quantity Quantity) Value() float64 {
	return quantity.value
}

func (quantity Quantity) Unit() Unit {
	return quantity.unit
}

// ConvertTo returns the same quantity expressed in unit.
func (quantity Quantity) ConvertTo(unit Unit) (Quantity, error) {
	if !quantity.unit.IsCompatible(unit) {
		return Quantity{}, errors.New(IncompatibleUnitsError{From: quantity.unit, To: unit})
	}

	if quantity.unit.factor == unit.factor && quantity.unit.offset == unit.offset {
		return Quantity{value: quantity.value, unit: unit}, nil
	}

	return Quantity{value: unit.fromBase(quantity.unit.toBase(quantity.value)), unit: unit}, nil
}

// Convert parses both unit expressions and converts value from one to the other.
func Convert(value float64, from, to string) (float64, error) {
	fromUnit, err := ParseUnit(from)
	if err != nil {
		return 0, err
	}

	toUnit, err := ParseUnit(to)
	if err != nil {
		return 0, err
	}

	converted, err := NewQuantity(value, fromUnit).ConvertTo(toUnit)
	if err != nil {
		return 0, err
	}

	return converted.value, nil
}

// String returns "5 m/s".
func (quantity Quantity) String() string {
	return strings.TrimSpace(strconv.FormatFloat(quantity.value, 'g', -1, 64) + " " + quantity.unit.String())
}
