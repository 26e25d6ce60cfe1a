package expr_test

import (
	"math"
	"testing"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/internal/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		expected any
		vars     map[string]any
		src      string
	}{
		{src: "1 + 2", expected: 3},
		{src: "10/4", expected: 2.5},
		{src: "-3*2", expected: -6},
		{src: "2.5", expected: 2.5},
		{src: "1.5e-3", expected: 0.0015},
		{src: "pow(2, 10)", expected: 1024},
		{src: "2**3", expected: 8},
		{src: "2**-1", expected: 0.5},
		{src: "-2**2", expected: -4},
		{src: "2**3**2", expected: 512},
		{src: "x**2 + 1", vars: map[string]any{"x": 3}, expected: 10},
		{src: "(1 + 1)**sqrt(4) * 2", expected: 8},
		{src: "2*pi*r**2", vars: map[string]any{"r": 1.0}, expected: 2 * math.Pi},
		{src: "sqrt(16)", expected: 4},
		{src: "abs(-2) + ceil(0.2) + floor(1.7)", expected: 4},
		{src: "max(1, 7, 3)", expected: 7},
		{src: "degrees(pi)", expected: 180.0},
		{src: "log(e)", expected: 1.0},
		{src: "2*a + b", vars: map[string]any{"a": 1.5, "b": 1}, expected: 4},
		{src: "[1, 2.5, 3]", expected: []any{1, 2.5, 3}},
		{src: `{ name = "x", n = 2 }`, expected: map[string]any{"name": "x", "n": 2}},
		{src: `"Newton"`, expected: "Newton"},
		{src: "1 < 2", expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()

			actual, err := expr.Evaluate(tc.src, tc.vars)
			require.NoError(t, err)

			if expected, ok := tc.expected.(float64); ok {
				if i, isInt := actual.(int); isInt {
					actual = float64(i)
				}

				assert.InDelta(t, expected, actual, 1e-12)

				return
			}

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEvaluateNamespaceFunction(t *testing.T) {
	t.Parallel()

	gaussian := function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "x", Type: cty.Number},
			{Name: "mean", Type: cty.Number},
			{Name: "sigma", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			mean, _ := args[1].AsBigFloat().Float64()
			sigma, _ := args[2].AsBigFloat().Float64()

			return cty.NumberFloatVal(1 / (math.Sqrt(2*math.Pi) * sigma) * math.Exp(-(x-mean)*(x-mean)/(2*sigma*sigma))), nil
		},
	})

	actual, err := expr.Evaluate("Gaussian(2, 2, 3)", map[string]any{"Gaussian": gaussian})
	require.NoError(t, err)
	assert.InDelta(t, 0.1329807601338109, actual, 1e-12)
	assert.True(t, expr.LooksLikeExpression("Gaussian(3, 0, 1)", map[string]any{"Gaussian": gaussian}))
}

func TestEvaluateInfinity(t *testing.T) {
	t.Parallel()

	actual, err := expr.Evaluate("-inf", nil)
	require.NoError(t, err)
	assert.Equal(t, math.Inf(-1), actual)
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()

	testCases := []string{
		"some method",
		"Newton",
		"sqrt(-1)",
		"file(\"/etc/passwd\")",
		"2 **",
		"x + 1",
	}

	for _, src := range testCases {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			_, err := expr.Evaluate(src, nil)
			require.Error(t, err)
		})
	}

	_, err := expr.Evaluate("Newton", nil)

	var evalErr expr.EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "Newton", evalErr.Expr)
}

func TestLooksLikeExpression(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		vars     map[string]any
		str      string
		expected bool
	}{
		{str: "2*3", expected: true},
		{str: "sin(1)", expected: true},
		{str: "2*pi", expected: true},
		{str: "1e-3", expected: true},
		{str: "-5", expected: false},
		{str: "+5", expected: false},
		{str: "5", expected: false},
		{str: "3.14", expected: false},
		{str: "yes", expected: false},
		{str: "Newton", expected: false},
		{str: "reset", expected: false},
		{str: "e", expected: true},
		{str: "g", vars: map[string]any{"g": 9.81}, expected: true},
		{str: "430 g", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, expr.LooksLikeExpression(tc.str, tc.vars))
		})
	}
}
