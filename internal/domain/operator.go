package domain

import "fmt"

// Operator is a divider between the multiple subgenres of a track.
type Operator struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// The notation knows exactly these three operators. The set is closed on
// purpose; a new operator means a registry change, not a data migration.
var operatorNames = map[string]string{
	"|": "Dual",
	">": "Transition",
	"~": "Back and Forth",
}

// IsOperatorSymbol reports whether s is one of the notation's operator symbols.
func IsOperatorSymbol(s string) bool {
	_, ok := operatorNames[s]
	return ok
}

// DescribeOperator returns the Operator for a one-character symbol.
func DescribeOperator(symbol string) (Operator, error) {
	name, ok := operatorNames[symbol]
	if !ok {
		return Operator{}, fmt.Errorf("unknown operator symbol %q", symbol)
	}
	return Operator{Symbol: symbol, Name: name}, nil
}
