package units

import (
	"fmt"
	"strings"
)

const (
	Length = iota
	Mass
	Time
	Current
	Temperature
	Amount
	Luminosity

	numDimensions
)

var dimensionNames = [numDimensions]string{"[length]", "[mass]", "[time]", "[current]", "[temperature]", "[substance]", "[luminosity]"}

// Dimension holds the exponents of the SI base dimensions. The zero value is dimensionless.
type Dimension [numDimensions]int

func (dim Dimension) add(other Dimension, sign int) Dimension {
	for i := range dim {
		dim[i] += sign * other[i]
	}

	return dim
}

func (dim Dimension) scale(power int) Dimension {
	for i := range dim {
		dim[i] *= power
	}

	return dim
}

// IsDimensionless returns true if all exponents are zero.
func (dim Dimension) IsDimensionless() bool {
	return dim == Dimension{}
}

// String returns e.g. "[length] / [time]".
func (dim Dimension) String() string {
	if dim.IsDimensionless() {
		return "dimensionless"
	}

	var num, den []string

	for i, exp := range dim {
		switch {
		case exp == 1:
			num = append(num, dimensionNames[i])
		case exp > 1:
			num = append(num, fmt.Sprintf("%s ** %d", dimensionNames[i], exp))
		case exp == -1:
			den = append(den, dimensionNames[i])
		case exp < -1:
			den = append(den, fmt.Sprintf("%s ** %d", dimensionNames[i], -exp))
		}
	}

	str := strings.Join(num, " * ")
	if str == "" {
		str = "1"
	}

	if len(den) > 0 {
		str += " / " + strings.Join(den, " / ")
	}

	return str
}
