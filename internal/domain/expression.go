package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Expression is the raw authored form of a track's subgenre composition:
// either a single token (a subgenre name or an operator symbol) or an
// arbitrarily nested sequence of expressions.
type Expression interface {
	expression()
}

// Token is a leaf of an expression.
type Token string

// Sequence is a nested group of expressions, order significant.
type Sequence []Expression

func (Token) expression()    {}
func (Sequence) expression() {}

// ParseExpression decodes the JSON form of a nested subgenre expression,
// e.g. `[["Dubstep", ">", "Riddim"], "~", "Brostep"]`.
func ParseExpression(data []byte) (Expression, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty subgenre expression")
	}

	if trimmed[0] == '[' {
		var parts []json.RawMessage
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return nil, fmt.Errorf("invalid subgenre expression: %w", err)
		}
		seq := make(Sequence, 0, len(parts))
		for _, part := range parts {
			expr, err := ParseExpression(part)
			if err != nil {
				return nil, err
			}
			seq = append(seq, expr)
		}
		return seq, nil
	}

	var token string
	if err := json.Unmarshal(trimmed, &token); err != nil {
		return nil, fmt.Errorf("subgenre expression must be a string or an array: %w", err)
	}
	return Token(token), nil
}

// Leaves returns the tokens of expr in depth-first, left-to-right order,
// discarding all grouping structure.
func Leaves(expr Expression) []Token {
	switch e := expr.(type) {
	case Token:
		return []Token{e}
	case Sequence:
		var leaves []Token
		for _, part := range e {
			leaves = append(leaves, Leaves(part)...)
		}
		return leaves
	default:
		return nil
	}
}
