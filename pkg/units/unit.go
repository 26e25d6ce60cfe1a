package units

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// Unit is a parsed unit expression. Its value in SI base units is `factor * x + offset`.
type Unit struct {
	expr   string
	factor float64
	offset float64
	dim    Dimension
}

// Dimensionless is the unit of plain numbers.
var Dimensionless = Unit{factor: 1}

// ParseUnit parses a unit expression such as "km/h", "kg/m**3" or "J/(kg K)".
func ParseUnit(expr string) (Unit, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Dimensionless, nil
	}

	tokens, err := tokenize(expr)
	if err != nil {
		return Unit{}, err
	}

	parser := &unitParser{expr: expr, tokens: tokens}

	unit, err := parser.parseProduct()
	if err != nil {
		return Unit{}, err
	}

	if !parser.done() {
		return Unit{}, errors.New(InvalidUnitError{Unit: expr, Reason: "unexpected " + strconv.Quote(parser.peek().text)})
	}

	unit.expr = expr

	return unit, nil
}

// MustParseUnit is like ParseUnit but panics on error.
func MustParseUnit(expr string) Unit {
	unit, err := ParseUnit(expr)
	if err != nil {
		panic(err)
	}

	return unit
}

// String returns the expression the unit was parsed from.
func (unit Unit) String() string {
	return unit.expr
}

// Dimension returns the exponents of the base dimensions.
func (unit Unit) Dimension() Dimension {
	return unit.dim
}

// Factor returns the scale of the unit relative to the SI base units.
func (unit Unit) Factor() float64 {
	return unit.factor
}

// IsCompatible returns true if both units measure the same physical dimension.
func (unit Unit) IsCompatible(other Unit) bool {
	return unit.dim == other.dim
}

func (unit Unit) toBase(value float64) float64 {
	return value*unit.factor + unit.offset
}

func (unit Unit) fromBase(value float64) float64 {
	return (value - unit.offset) / unit.factor
}

func (unit Unit) mul(other Unit, sign int) Unit {
	factor := unit.factor * other.factor
	if sign < 0 {
		factor = unit.factor / other.factor
	}

	return Unit{factor: factor, dim: unit.dim.add(other.dim, sign)}
}

func (unit Unit) pow(power int) Unit {
	return Unit{factor: math.Pow(unit.factor, float64(power)), dim: unit.dim.scale(power)}
}

type tokenKind byte

const (
	tokenSymbol tokenKind = iota
	tokenNumber
	tokenMul
	tokenDiv
	tokenPow
	tokenOpen
	tokenClose
)

type token struct {
	text string
	kind tokenKind
}

func isSymbolRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func tokenize(expr string) ([]token, error) {
	var tokens []token

	runes := []rune(expr)

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++
		case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
			tokens = append(tokens, token{text: "**", kind: tokenPow})
			i += 2
		case r == '^':
			tokens = append(tokens, token{text: "^", kind: tokenPow})
			i++
		case r == '*' || r == '·':
			tokens = append(tokens, token{text: string(r), kind: tokenMul})
			i++
		case r == '/':
			tokens = append(tokens, token{text: "/", kind: tokenDiv})
			i++
		case r == '(':
			tokens = append(tokens, token{text: "(", kind: tokenOpen})
			i++
		case r == ')':
			tokens = append(tokens, token{text: ")", kind: tokenClose})
			i++
		case isSymbolRune(r):
			start := i
			for i < len(runes) && isSymbolRune(runes[i]) {
				i++
			}

			tokens = append(tokens, token{text: string(runes[start:i]), kind: tokenSymbol})
		case unicode.IsDigit(r) || r == '.' || r == '-' || r == '+':
			start := i
			i++

			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.' ||
				((runes[i] == 'e' || runes[i] == 'E') && i+1 < len(runes) && (unicode.IsDigit(runes[i+1]) || runes[i+1] == '-' || runes[i+1] == '+')) ||
				((runes[i] == '-' || runes[i] == '+') && (runes[i-1] == 'e' || runes[i-1] == 'E'))) {
				i++
			}

			tokens = append(tokens, token{text: string(runes[start:i]), kind: tokenNumber})
		default:
			return nil, errors.New(InvalidUnitError{Unit: expr, Reason: "unexpected character " + strconv.QuoteRune(r)})
		}
	}

	return tokens, nil
}

type unitParser struct {
	expr   string
	tokens []token
	pos    int
}

func (parser *unitParser) done() bool {
	return parser.pos >= len(parser.tokens)
}

func (parser *unitParser) peek() token {
	return parser.tokens[parser.pos]
}

func (parser *unitParser) invalid(reason string) error {
	return errors.New(InvalidUnitError{Unit: parser.expr, Reason: reason})
}

// product := power (('*' | '/' | <whitespace>) power)*
func (parser *unitParser) parseProduct() (Unit, error) {
	unit, err := parser.parsePower()
	if err != nil {
		return Unit{}, err
	}

	for !parser.done() {
		sign := 1

		switch next := parser.peek(); next.kind {
		case tokenMul:
			parser.pos++
		case tokenDiv:
			sign = -1
			parser.pos++
		case tokenSymbol, tokenOpen:
		default:
			return unit, nil
		}

		operand, err := parser.parsePower()
		if err != nil {
			return Unit{}, err
		}

		unit = unit.mul(operand, sign)
	}

	return unit, nil
}

// power := atom (('**' | '^') integer)?
func (parser *unitParser) parsePower() (Unit, error) {
	unit, offset, err := parser.parseAtom()
	if err != nil {
		return Unit{}, err
	}

	if parser.done() || parser.peek().kind != tokenPow {
		unit.offset = offset
		return unit, nil
	}

	parser.pos++

	if parser.done() || parser.peek().kind != tokenNumber {
		return Unit{}, parser.invalid("missing exponent")
	}

	power, err := strconv.Atoi(parser.peek().text)
	if err != nil {
		return Unit{}, parser.invalid("exponent " + strconv.Quote(parser.peek().text) + " is not an integer")
	}

	parser.pos++

	return unit.pow(power), nil
}

// atom := symbol | number | '(' product ')'
func (parser *unitParser) parseAtom() (Unit, float64, error) {
	if parser.done() {
		return Unit{}, 0, parser.invalid("unexpected end")
	}

	next := parser.peek()
	parser.pos++

	switch next.kind {
	case tokenSymbol:
		def, ok := lookup(next.text)
		if !ok {
			return Unit{}, 0, errors.New(UnknownUnitError{Unit: parser.expr, Symbol: next.text})
		}

		return Unit{factor: def.factor, dim: def.dim}, def.offset, nil
	case tokenNumber:
		factor, err := strconv.ParseFloat(next.text, 64)
		if err != nil || factor == 0 {
			return Unit{}, 0, parser.invalid("bad factor " + strconv.Quote(next.text))
		}

		return Unit{factor: factor}, 0, nil
	case tokenOpen:
		unit, err := parser.parseProduct()
		if err != nil {
			return Unit{}, 0, err
		}

		if parser.done() || parser.peek().kind != tokenClose {
			return Unit{}, 0, parser.invalid("missing )")
		}

		parser.pos++

		return unit, 0, nil
	}

	return Unit{}, 0, parser.invalid("unexpected " + strconv.Quote(next.text))
}
