package pool

import (
	"slices"
	"strings"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// Coercion is the strategy turning a raw string into a typed value.
type Coercion int

const (
	// CoerceAuto picks the strategy from the widget or the default value.
	CoerceAuto Coercion = iota
	CoerceBool
	CoerceInt
	CoerceFloat
	// CoerceExpression evaluates the string as an expression and keeps the raw string
	// when evaluation fails.
	CoerceExpression
	CoerceString
	// CoerceFunc calls Attributes.Convert.
	CoerceFunc
)

var coercionNames = map[Coercion]string{
	CoerceAuto:       "auto",
	CoerceBool:       "bool",
	CoerceInt:        "int",
	CoerceFloat:      "float",
	CoerceExpression: "eval",
	CoerceString:     "str",
	CoerceFunc:       "func",
}

var coercionAliases = map[string]Coercion{
	"":           CoerceAuto,
	"auto":       CoerceAuto,
	"bool":       CoerceBool,
	"str2bool":   CoerceBool,
	"int":        CoerceInt,
	"float":      CoerceFloat,
	"eval":       CoerceExpression,
	"expression": CoerceExpression,
	"str":        CoerceString,
	"string":     CoerceString,
}

func (coercion Coercion) String() string {
	if name, ok := coercionNames[coercion]; ok {
		return name
	}

	return "unknown"
}

// IsValid returns true for the declared strategies.
func (coercion Coercion) IsValid() bool {
	_, ok := coercionNames[coercion]
	return ok
}

func (coercion Coercion) isNumeric() bool {
	return coercion == CoerceInt || coercion == CoerceFloat
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the names used in pool files
// and attribute maps ("float", "int", "str2bool", "eval", ...).
func (coercion *Coercion) UnmarshalText(text []byte) error {
	val, ok := coercionAliases[strings.ToLower(string(text))]
	if !ok {
		return errors.Errorf("unknown str2type %q", string(text))
	}

	*coercion = val

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (coercion Coercion) MarshalText() ([]byte, error) {
	return []byte(coercion.String()), nil
}

var (
	trueStrings  = []string{"on", "true", "yes"}
	falseStrings = []string{"off", "false", "no"}
)

// StrToBool converts on/true/yes and off/false/no, in any letter case.
func StrToBool(str string) (bool, error) {
	lower := strings.ToLower(str)

	for _, s := range trueStrings {
		if lower == s {
			return true, nil
		}
	}

	for _, s := range falseStrings {
		if lower == s {
			return false, nil
		}
	}

	return false, errors.Errorf("%q is not a boolean value %v", str, slices.Concat(trueStrings, falseStrings))
}
