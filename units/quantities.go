package units

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// baseSymbols are the SI base units, in the order used by the canonical form.
// rad and sr are SI dimensionless, they are kept as markers so that rad/s is not 1/s
var baseSymbols = [dimensionCount]string{"kg", "m", "s", "A", "K", "mol", "cd", "rad", "sr"}

const dimensionCount = 9

// Dimension contains the exponents of each base unit
type Dimension [dimensionCount]int

// Quantity is a unit reduced to base units: a scale and the exponents of the base units.
// For instance, km is 1000 * m and Pa is kg * m**-1 * s**-2
type Quantity struct {
	// Scale is the multiplier to the base units (1 for coherent units)
	Scale float64
	// Dims are the exponents of the base units
	Dims Dimension
}

// Dimensionless returns the neutral quantity
func Dimensionless() Quantity {
	return Quantity{Scale: 1}
}

// newBase returns a quantity for a single base unit
func newBase(index int) Quantity {
	result := Dimensionless()
	result.Dims[index] = 1
	return result
}

// Mul returns q * other
func (q Quantity) Mul(other Quantity) Quantity {
	result := Quantity{Scale: q.Scale * other.Scale}
	for index := 0; index < dimensionCount; index++ {
		result.Dims[index] = q.Dims[index] + other.Dims[index]
	}

	return result
}

// Div returns q / other
func (q Quantity) Div(other Quantity) Quantity {
	return q.Mul(other.Pow(-1))
}

// Pow returns q ** exponent
func (q Quantity) Pow(exponent int) Quantity {
	result := Quantity{Scale: math.Pow(q.Scale, float64(exponent))}
	for index := 0; index < dimensionCount; index++ {
		result.Dims[index] = q.Dims[index] * exponent
	}

	return result
}

// IsDimensionless returns true for a quantity with no base unit and a unit scale
func (q Quantity) IsDimensionless() bool {
	return q.Dims == Dimension{} && formatScale(q.Scale) == "1"
}

// String returns the canonical form: base units in kg m s A K mol cd rad sr order,
// numerator joined by *, every denominator factor prefixed by /, no space.
// Dimensionless quantity is 1
func (q Quantity) String() string {
	var numerator []string
	var denominator []string

	for index, exponent := range q.Dims {
		switch {
		case exponent > 0:
			numerator = append(numerator, formatFactor(baseSymbols[index], exponent))
		case exponent < 0:
			denominator = append(denominator, formatFactor(baseSymbols[index], -exponent))
		}
	}

	scale := formatScale(q.Scale)
	if scale != "1" {
		numerator = append([]string{scale}, numerator...)
	}

	var builder strings.Builder
	if len(numerator) == 0 {
		builder.WriteString("1")
	} else {
		builder.WriteString(strings.Join(numerator, "*"))
	}

	for _, factor := range denominator {
		builder.WriteString("/")
		builder.WriteString(factor)
	}

	return builder.String()
}

// formatFactor returns symbol or symbol**exponent
func formatFactor(symbol string, exponent int) string {
	if exponent == 1 {
		return symbol
	}

	return symbol + "**" + strconv.Itoa(exponent)
}

// formatScale rounds scale to 12 significant digits to absorb float noise
func formatScale(scale float64) string {
	return strconv.FormatFloat(scale, 'g', 12, 64)
}

// signature maps each symbol of an expression to its exponent
type signature map[string]int

// Mul returns s * other
func (s signature) Mul(other signature) signature {
	result := make(signature, len(s)+len(other))
	for symbol, exponent := range s {
		result[symbol] += exponent
	}

	for symbol, exponent := range other {
		result[symbol] += exponent
	}

	return result
}

// Div returns s / other
func (s signature) Div(other signature) signature {
	return s.Mul(other.Pow(-1))
}

// Pow returns s ** exponent
func (s signature) Pow(exponent int) signature {
	result := make(signature, len(s))
	for symbol, value := range s {
		result[symbol] = value * exponent
	}

	return result
}

// String returns symbol**exponent factors sorted by symbol, joined by a space
func (s signature) String() string {
	factors := make([]string, 0, len(s))
	for symbol, exponent := range s {
		if exponent != 0 {
			factors = append(factors, symbol+"**"+strconv.Itoa(exponent))
		}
	}

	slices.Sort(factors)
	return strings.Join(factors, " ")
}
