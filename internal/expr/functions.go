package expr

import (
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// Functions returns the functions available to expressions. Nothing else is callable.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"sin":     unaryFunc(math.Sin),
		"cos":     unaryFunc(math.Cos),
		"tan":     unaryFunc(math.Tan),
		"asin":    unaryFunc(math.Asin),
		"acos":    unaryFunc(math.Acos),
		"atan":    unaryFunc(math.Atan),
		"sinh":    unaryFunc(math.Sinh),
		"cosh":    unaryFunc(math.Cosh),
		"tanh":    unaryFunc(math.Tanh),
		"exp":     unaryFunc(math.Exp),
		"log":     unaryFunc(math.Log),
		"log10":   unaryFunc(math.Log10),
		"log2":    unaryFunc(math.Log2),
		"sqrt":    unaryFunc(math.Sqrt),
		"degrees": unaryFunc(func(x float64) float64 { return x * 180 / math.Pi }),
		"radians": unaryFunc(func(x float64) float64 { return x * math.Pi / 180 }),
		"atan2":   binaryFunc(math.Atan2),
		"hypot":   binaryFunc(math.Hypot),
		"pow":     stdlib.PowFunc,
		"abs":     stdlib.AbsoluteFunc,
		"ceil":    stdlib.CeilFunc,
		"floor":   stdlib.FloorFunc,
		"max":     stdlib.MaxFunc,
		"min":     stdlib.MinFunc,
		"signum":  stdlib.SignumFunc,
	}
}

// Constants returns the predefined variables.
func Constants() map[string]cty.Value {
	return map[string]cty.Value{
		"pi":  cty.NumberFloatVal(math.Pi),
		"e":   cty.NumberFloatVal(math.E),
		"inf": cty.PositiveInfinity,
	}
}

func unaryFunc(fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			return numberVal(fn(x))
		},
	})
}

func binaryFunc(fn func(float64, float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "x", Type: cty.Number},
			{Name: "y", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			y, _ := args[1].AsBigFloat().Float64()

			return numberVal(fn(x, y))
		},
	})
}

func numberVal(result float64) (cty.Value, error) {
	if math.IsNaN(result) {
		return cty.UnknownVal(cty.Number), errors.New(DomainError{})
	}

	return cty.NumberFloatVal(result), nil
}
