// Package ctyhelper converts between cty values and plain Go values.
package ctyhelper

import (
	"math"
	"math/big"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// ToGoValue converts a known cty value to bool, int, float64, string, []any or
// map[string]any. Integral numbers that fit in an int become int.
func ToGoValue(value cty.Value) (any, error) {
	switch {
	case !value.IsKnown():
		return nil, errors.Errorf("value of type %s is not known", value.Type().FriendlyName())
	case value.IsNull():
		return nil, nil
	}

	ty := value.Type()

	switch {
	case ty == cty.Bool:
		return value.True(), nil
	case ty == cty.String:
		return value.AsString(), nil
	case ty == cty.Number:
		return numberToGo(value.AsBigFloat()), nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		result := make([]any, 0, value.LengthInt())

		for _, elem := range value.AsValueSlice() {
			converted, err := ToGoValue(elem)
			if err != nil {
				return nil, err
			}

			result = append(result, converted)
		}

		return result, nil
	case ty.IsMapType(), ty.IsObjectType():
		result := make(map[string]any, value.LengthInt())

		for key, elem := range value.AsValueMap() {
			converted, err := ToGoValue(elem)
			if err != nil {
				return nil, err
			}

			result[key] = converted
		}

		return result, nil
	}

	return nil, errors.Errorf("unsupported value of type %s", ty.FriendlyName())
}

func numberToGo(number *big.Float) any {
	if number.IsInt() {
		if i, accuracy := number.Int64(); accuracy == big.Exact && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
	}

	f, _ := number.Float64()

	return f
}

// FromGoValue converts the Go values produced by ToGoValue, and other ints and floats, back to cty.
func FromGoValue(value any) (cty.Value, error) {
	switch val := value.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}

		elems := make([]cty.Value, 0, len(val))

		for _, elem := range val {
			converted, err := FromGoValue(elem)
			if err != nil {
				return cty.NilVal, err
			}

			elems = append(elems, converted)
		}

		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}

		attrs := make(map[string]cty.Value, len(val))

		for key, elem := range val {
			converted, err := FromGoValue(elem)
			if err != nil {
				return cty.NilVal, err
			}

			attrs[key] = converted
		}

		return cty.ObjectVal(attrs), nil
	case float64:
		if math.IsNaN(val) {
			return cty.NilVal, errors.Errorf("NaN cannot be converted")
		}

		return cty.NumberFloatVal(val), nil
	}

	ty, err := gocty.ImpliedType(value)
	if err != nil {
		return cty.NilVal, errors.New(err)
	}

	converted, err := gocty.ToCtyValue(value, ty)
	if err != nil {
		return cty.NilVal, errors.New(err)
	}

	return converted, nil
}

// FromGoMap converts every entry of vars, returning the variables for an hcl.EvalContext.
func FromGoMap(vars map[string]any) (map[string]cty.Value, error) {
	result := make(map[string]cty.Value, len(vars))

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		converted, err := FromGoValue(vars[key])
		if err != nil {
			return nil, errors.WithStackTraceAndPrefix(err, "variable %s", key)
		}

		result[key] = converted
	}

	return result, nil
}
