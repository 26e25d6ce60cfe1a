package expr

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// rewritePower replaces every "a**b" in src by "pow(a, b)", since HCL has no power
// operator. The operator is right associative and binds tighter than a unary sign on its
// left, so "-2**2" is -4 and "2**3**2" is 2**9. Sources that fail to lex are returned
// unchanged and left to the parser to report.
func rewritePower(src string) string {
	for {
		tokens, diags := hclsyntax.LexExpression([]byte(src), filename, hcl.InitialPos)
		if diags.HasErrors() {
			return src
		}

		op := lastPowerOperator(tokens)
		if op < 0 {
			return src
		}

		left := operandStart(tokens, op-1)
		right := operandEnd(tokens, op+2)

		if left < 0 || right < 0 {
			return src
		}

		start := tokens[left].Range.Start.Byte
		end := tokens[right].Range.End.Byte
		base := src[start:tokens[op].Range.Start.Byte]
		exponent := src[tokens[op+2].Range.Start.Byte:end]

		src = src[:start] + "pow(" + base + ", " + exponent + ")" + src[end:]
	}
}

// lastPowerOperator returns the index of the first star of the rightmost "**".
func lastPowerOperator(tokens hclsyntax.Tokens) int {
	for i := len(tokens) - 2; i >= 0; i-- {
		if tokens[i].Type == hclsyntax.TokenStar && tokens[i+1].Type == hclsyntax.TokenStar &&
			tokens[i].Range.End.Byte == tokens[i+1].Range.Start.Byte {
			return i
		}
	}

	return -1
}

// operandStart returns the index of the first token of the operand ending at end.
func operandStart(tokens hclsyntax.Tokens, end int) int {
	for k := end; k >= 0; {
		switch tokens[k].Type {
		case hclsyntax.TokenNumberLit:
			return k
		case hclsyntax.TokenIdent:
			if k >= 2 && tokens[k-1].Type == hclsyntax.TokenDot {
				k -= 2
				continue
			}

			return k
		case hclsyntax.TokenCParen:
			open := matchBackward(tokens, k, hclsyntax.TokenOParen, hclsyntax.TokenCParen)
			if open > 0 && tokens[open-1].Type == hclsyntax.TokenIdent {
				return open - 1
			}

			return open
		case hclsyntax.TokenCBrack:
			open := matchBackward(tokens, k, hclsyntax.TokenOBrack, hclsyntax.TokenCBrack)
			if open <= 0 {
				return open
			}

			k = open - 1
		default:
			return -1
		}
	}

	return -1
}

// operandEnd returns the index of the last token of the operand starting at start. A
// leading sign belongs to the operand, so "2**-1" is pow(2, -1).
func operandEnd(tokens hclsyntax.Tokens, start int) int {
	k := start
	if k < len(tokens) && (tokens[k].Type == hclsyntax.TokenMinus || tokens[k].Type == hclsyntax.TokenPlus) {
		k++
	}

	if k >= len(tokens) {
		return -1
	}

	switch tokens[k].Type {
	case hclsyntax.TokenNumberLit:
	case hclsyntax.TokenIdent:
		if k+1 < len(tokens) && tokens[k+1].Type == hclsyntax.TokenOParen {
			k = matchForward(tokens, k+1, hclsyntax.TokenOParen, hclsyntax.TokenCParen)
		}
	case hclsyntax.TokenOParen:
		k = matchForward(tokens, k, hclsyntax.TokenOParen, hclsyntax.TokenCParen)
	default:
		return -1
	}

	for k >= 0 && k+1 < len(tokens) {
		switch {
		case tokens[k+1].Type == hclsyntax.TokenOBrack:
			k = matchForward(tokens, k+1, hclsyntax.TokenOBrack, hclsyntax.TokenCBrack)
		case tokens[k+1].Type == hclsyntax.TokenDot && k+2 < len(tokens) && tokens[k+2].Type == hclsyntax.TokenIdent:
			k += 2
		default:
			return k
		}
	}

	return k
}

func matchForward(tokens hclsyntax.Tokens, open int, openType, closeType hclsyntax.TokenType) int {
	depth := 0

	for k := open; k < len(tokens); k++ {
		switch tokens[k].Type {
		case openType:
			depth++
		case closeType:
			depth--
			if depth == 0 {
				return k
			}
		}
	}

	return -1
}

func matchBackward(tokens hclsyntax.Tokens, closing int, openType, closeType hclsyntax.TokenType) int {
	depth := 0

	for k := closing; k >= 0; k-- {
		switch tokens[k].Type {
		case closeType:
			depth++
		case openType:
			depth--
			if depth == 0 {
				return k
			}
		}
	}

	return -1
}
