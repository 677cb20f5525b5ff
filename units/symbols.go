package units

import "strings"

// symbols maps a unit symbol to its value in base units
var symbols = map[string]Quantity{}

// prefixes are SI prefixes accepted in front of a known symbol
var prefixes = map[string]float64{
	"G":  1e9,
	"M":  1e6,
	"k":  1e3,
	"h":  1e2,
	"da": 1e1,
	"d":  1e-1,
	"c":  1e-2,
	"m":  1e-3,
	"u":  1e-6,
	"n":  1e-9,
}

func init() {
	for index, symbol := range baseSymbols {
		symbols[symbol] = newBase(index)
	}

	kg := symbols["kg"]
	m := symbols["m"]
	s := symbols["s"]
	a := symbols["A"]

	symbols["g"] = Quantity{Scale: 1e-3, Dims: kg.Dims}
	symbols["N"] = kg.Mul(m).Div(s.Pow(2))
	symbols["Pa"] = symbols["N"].Div(m.Pow(2))
	symbols["J"] = symbols["N"].Mul(m)
	symbols["W"] = symbols["J"].Div(s)
	symbols["Hz"] = s.Pow(-1)
	symbols["C"] = a.Mul(s)
	symbols["V"] = symbols["W"].Div(a)
	symbols["ohm"] = symbols["V"].Div(a)
	symbols["bar"] = Quantity{Scale: 1e5, Dims: symbols["Pa"].Dims}
	symbols["L"] = Quantity{Scale: 1e-3, Dims: m.Pow(3).Dims}
	symbols["min"] = Quantity{Scale: 60, Dims: s.Dims}
	symbols["h"] = Quantity{Scale: 3600, Dims: s.Dims}
	symbols["day"] = Quantity{Scale: 86400, Dims: s.Dims}
	symbols["percent"] = Quantity{Scale: 1e-2}
	symbols["%"] = Quantity{Scale: 1e-2}
}

// lookupSymbol returns the quantity for a symbol, accepting an SI prefix
func lookupSymbol(symbol string) (Quantity, bool) {
	if value, found := symbols[symbol]; found {
		return value, true
	}

	for prefix, factor := range prefixes {
		if !strings.HasPrefix(symbol, prefix) {
			continue
		}

		rest := strings.TrimPrefix(symbol, prefix)
		// kg already carries its prefix, no kkg
		if rest == "kg" || rest == "" {
			continue
		}

		if value, found := symbols[rest]; found {
			value.Scale = value.Scale * factor
			return value, true
		}
	}

	return Quantity{}, false
}
