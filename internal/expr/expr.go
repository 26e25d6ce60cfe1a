// Package expr evaluates arithmetic expressions typed by users in place of plain numbers,
// e.g. "2*pi*sqrt(l/g)" or "[1, 2, 3]".
//
// Expressions use HCL syntax. Only the functions and constants listed by Functions and
// Constants plus the caller's variables are visible: there is no way to reach the file
// system or any other host resource.
package expr

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/gruntwork-io/parampool/internal/ctyhelper"
	"github.com/gruntwork-io/parampool/internal/errors"
)

const filename = "<expression>"

// EvalError is returned when an expression cannot be parsed or evaluated.
type EvalError struct {
	Expr   string
	Detail string
}

func (err EvalError) Error() string {
	return fmt.Sprintf("cannot evaluate %q: %s", err.Expr, err.Detail)
}

// DomainError is returned by a math function called outside of its domain, e.g. sqrt(-1).
type DomainError struct{}

func (err DomainError) Error() string {
	return "math domain error"
}

// Evaluate parses src and evaluates it with vars in scope. A function.Function in vars is
// callable by its key, and "a**b" is a power. Numbers come back as int
// when integral, otherwise float64; lists as []any and objects as map[string]any.
func Evaluate(src string, vars map[string]any) (any, error) {
	expression, diags := hclsyntax.ParseExpression([]byte(rewritePower(src)), filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.New(EvalError{Expr: src, Detail: diagsDetail(diags)})
	}

	ctx := &hcl.EvalContext{
		Variables: Constants(),
		Functions: Functions(),
	}

	values := make(map[string]any, len(vars))

	for name, val := range vars {
		if fn, ok := val.(function.Function); ok {
			ctx.Functions[name] = fn
			continue
		}

		values[name] = val
	}

	variables, err := ctyhelper.FromGoMap(values)
	if err != nil {
		return nil, err
	}

	maps.Copy(ctx.Variables, variables)

	value, diags := expression.Value(ctx)
	if diags.HasErrors() {
		return nil, errors.New(EvalError{Expr: src, Detail: diagsDetail(diags)})
	}

	result, err := ctyhelper.ToGoValue(value)
	if err != nil {
		return nil, errors.New(EvalError{Expr: src, Detail: err.Error()})
	}

	return result, nil
}

func diagsDetail(diags hcl.Diagnostics) string {
	details := make([]string, 0, len(diags))

	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}

		detail := diag.Summary
		if diag.Detail != "" {
			detail += "; " + diag.Detail
		}

		details = append(details, detail)
	}

	return strings.Join(details, "; ")
}

var identRegexp = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// LooksLikeExpression returns true when str, after an optional leading sign, contains an
// arithmetic operator or names a known function, constant or one of vars.
func LooksLikeExpression(str string, vars map[string]any) bool {
	str = strings.TrimSpace(str)
	str = strings.TrimLeft(str, "+-")

	if strings.ContainsAny(str, "+-*/%") {
		return true
	}

	functions := Functions()
	constants := Constants()

	for _, ident := range identRegexp.FindAllString(str, -1) {
		if _, ok := functions[ident]; ok {
			return true
		}

		if _, ok := constants[ident]; ok {
			return true
		}

		if _, ok := vars[ident]; ok {
			return true
		}
	}

	return false
}
