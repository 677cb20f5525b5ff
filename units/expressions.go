package units

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// compactExponent matches a symbol immediately followed by an exponent, as in m2 or s-1
var compactExponent = regexp.MustCompile(`\b([a-zA-Z]+)(-?\d+)`)

// Normalize rewrites compact exponents: m2 becomes m**2 and s-1 becomes s**-1.
// Spaces are trimmed, other characters are kept as is
func Normalize(value string) string {
	return compactExponent.ReplaceAllString(strings.TrimSpace(value), "${1}**${2}")
}

// IsDimensionlessInput returns true for the values meaning "no unit": empty, 1 and -
func IsDimensionlessInput(value string) bool {
	switch strings.TrimSpace(value) {
	case "", "1", "-":
		return true
	default:
		return false
	}
}

// Reduce parses a unit expression and reduces it to base units
func Reduce(expression string) (Quantity, error) {
	if IsDimensionlessInput(expression) {
		return Dimensionless(), nil
	}

	return parse(expression, func(symbol string) (Quantity, error) {
		if value, found := lookupSymbol(symbol); found {
			return value, nil
		}

		return Quantity{}, fmt.Errorf("unknown unit symbol %q", symbol)
	}, func(value float64) Quantity {
		return Quantity{Scale: value}
	})
}

// Signature returns the expression as written, reduced to the exponent of each symbol it uses.
// Symbols are not expanded: N*m and J have different signatures, so do s-1 and Hz.
// It does not check that symbols exist
func Signature(expression string) (string, error) {
	if IsDimensionlessInput(expression) {
		return "", nil
	}

	result, err := parse(expression, func(symbol string) (signature, error) {
		return signature{symbol: 1}, nil
	}, func(value float64) signature {
		if scale := formatScale(value); scale != "1" {
			return signature{scale: 1}
		}

		return signature{}
	})

	if err != nil {
		return "", err
	}

	return result.String(), nil
}

// parse tokenizes and parses an expression, evaluating symbols and numbers with the given functions
func parse[T operand[T]](expression string, symbol func(string) (T, error), number func(float64) T) (T, error) {
	var empty T
	tokens, errTokens := tokenize(Normalize(expression))
	if errTokens != nil {
		return empty, errTokens
	}

	p := parser[T]{tokens: tokens, symbol: symbol, number: number}
	result, errParse := p.parseExpression()
	if errParse != nil {
		return empty, errParse
	} else if !p.done() {
		return empty, fmt.Errorf("unexpected %q in %q", p.peek().value, expression)
	}

	return result, nil
}

// Canonicalize returns the canonical form of a unit expression
func Canonicalize(expression string) (string, error) {
	if quantity, err := Reduce(expression); err != nil {
		return "", err
	} else {
		return quantity.String(), nil
	}
}

type tokenKind int

const (
	tokenSymbol tokenKind = iota
	tokenNumber
	tokenMul
	tokenDiv
	tokenPow
	tokenOpen
	tokenClose
	tokenSign
	tokenSpace
)

type token struct {
	kind  tokenKind
	value string
}

// tokenize splits a normalized expression. Spaces are kept as implicit products
func tokenize(expression string) ([]token, error) {
	var result []token
	runes := []rune(expression)
	size := len(runes)

	for index := 0; index < size; {
		current := runes[index]
		switch {
		case unicode.IsSpace(current):
			for index < size && unicode.IsSpace(runes[index]) {
				index++
			}

			result = append(result, token{kind: tokenSpace, value: " "})
		case current == '*' && index+1 < size && runes[index+1] == '*':
			result = append(result, token{kind: tokenPow, value: "**"})
			index += 2
		case current == '^':
			result = append(result, token{kind: tokenPow, value: "^"})
			index++
		case current == '*' || current == '.' || current == '·':
			result = append(result, token{kind: tokenMul, value: string(current)})
			index++
		case current == '/':
			result = append(result, token{kind: tokenDiv, value: "/"})
			index++
		case current == '(':
			result = append(result, token{kind: tokenOpen, value: "("})
			index++
		case current == ')':
			result = append(result, token{kind: tokenClose, value: ")"})
			index++
		case current == '-' || current == '+':
			result = append(result, token{kind: tokenSign, value: string(current)})
			index++
		case unicode.IsDigit(current):
			start := index
			for index < size && (unicode.IsDigit(runes[index]) || runes[index] == '.') {
				index++
			}

			// scientific notation, 1e-3
			if index+1 < size && (runes[index] == 'e' || runes[index] == 'E') {
				next := index + 1
				if runes[next] == '-' || runes[next] == '+' {
					next++
				}

				if next < size && unicode.IsDigit(runes[next]) {
					index = next
					for index < size && unicode.IsDigit(runes[index]) {
						index++
					}
				}
			}

			result = append(result, token{kind: tokenNumber, value: string(runes[start:index])})
		case unicode.IsLetter(current) || current == '%' || current == '_':
			start := index
			for index < size && (unicode.IsLetter(runes[index]) || runes[index] == '_' || runes[index] == '%') {
				index++
			}

			result = append(result, token{kind: tokenSymbol, value: string(runes[start:index])})
		default:
			return nil, fmt.Errorf("unexpected character %q in %q", current, expression)
		}
	}

	return trimSpaces(result), nil
}

// trimSpaces removes spaces that are not between two operands
func trimSpaces(tokens []token) []token {
	result := make([]token, 0, len(tokens))
	for index, current := range tokens {
		if current.kind != tokenSpace {
			result = append(result, current)
			continue
		}

		if index == 0 || index == len(tokens)-1 {
			continue
		}

		previous, next := tokens[index-1], tokens[index+1]
		endsOperand := previous.kind == tokenSymbol || previous.kind == tokenNumber || previous.kind == tokenClose
		startsOperand := next.kind == tokenSymbol || next.kind == tokenNumber || next.kind == tokenOpen
		if endsOperand && startsOperand {
			result = append(result, current)
		}
	}

	return result
}

// parser is a recursive descent parser:
// expression := factor { ('*' | '/' | ' ') factor }
// factor := primary [ '**' exponent ]
// primary := symbol | number | '(' expression ')'
type parser[T operand[T]] struct {
	tokens   []token
	position int
	// symbol evaluates a unit symbol
	symbol func(string) (T, error)
	// number evaluates a numeric factor
	number func(float64) T
}

// operand is what the parser computes: reduced quantities or symbol signatures
type operand[T any] interface {
	Mul(T) T
	Div(T) T
	Pow(int) T
}

func (p *parser[T]) done() bool {
	return p.position >= len(p.tokens)
}

func (p *parser[T]) peek() token {
	if p.done() {
		return token{kind: -1}
	}

	return p.tokens[p.position]
}

func (p *parser[T]) next() token {
	current := p.peek()
	p.position++
	return current
}

func (p *parser[T]) parseExpression() (T, error) {
	result, err := p.parseFactor()
	if err != nil {
		return result, err
	}

	for !p.done() {
		switch p.peek().kind {
		case tokenMul, tokenSpace:
			p.next()
			if operand, err := p.parseFactor(); err != nil {
				return result, err
			} else {
				result = result.Mul(operand)
			}
		case tokenDiv:
			p.next()
			if operand, err := p.parseFactor(); err != nil {
				return result, err
			} else {
				result = result.Div(operand)
			}
		default:
			return result, nil
		}
	}

	return result, nil
}

func (p *parser[T]) parseFactor() (T, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return base, err
	}

	if p.peek().kind != tokenPow {
		return base, nil
	}

	p.next()
	exponent, errExponent := p.parseExponent()
	if errExponent != nil {
		return base, errExponent
	}

	return base.Pow(exponent), nil
}

func (p *parser[T]) parseExponent() (int, error) {
	parenthesis := false
	if p.peek().kind == tokenOpen {
		parenthesis = true
		p.next()
	}

	sign := 1
	if p.peek().kind == tokenSign {
		if p.next().value == "-" {
			sign = -1
		}
	}

	current := p.next()
	if current.kind != tokenNumber {
		return 0, errors.New("expecting an integer exponent")
	}

	value, errValue := strconv.Atoi(current.value)
	if errValue != nil {
		return 0, fmt.Errorf("invalid exponent %q", current.value)
	}

	if parenthesis && p.next().kind != tokenClose {
		return 0, errors.New("unbalanced parenthesis in exponent")
	}

	return sign * value, nil
}

func (p *parser[T]) parsePrimary() (T, error) {
	var empty T
	current := p.next()
	switch current.kind {
	case tokenSymbol:
		return p.symbol(current.value)
	case tokenNumber:
		value, err := strconv.ParseFloat(current.value, 64)
		if err != nil {
			return empty, fmt.Errorf("invalid number %q", current.value)
		}

		return p.number(value), nil
	case tokenOpen:
		inner, err := p.parseExpression()
		if err != nil {
			return inner, err
		} else if p.next().kind != tokenClose {
			return inner, errors.New("unbalanced parenthesis")
		}

		return inner, nil
	default:
		return empty, fmt.Errorf("unexpected token %q", current.value)
	}
}
