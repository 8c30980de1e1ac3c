package calc

import (
	"fmt"
	"strings"
)

// Operator is a pending binary operator. The zero value, OperatorNone, means
// no operator has been chosen.
type Operator int

// Supported operators.
const (
	OperatorNone Operator = iota
	OperatorAdd
	OperatorSubtract
	OperatorMultiply
	OperatorDivide
)

// Operators lists every valid operator in keypad order.
var Operators = []Operator{OperatorAdd, OperatorSubtract, OperatorMultiply, OperatorDivide}

// Symbol returns the display glyph of the operator, or "" for OperatorNone.
func (o Operator) Symbol() string {
	switch o {
	case OperatorAdd:
		return "+"
	case OperatorSubtract:
		return "-"
	case OperatorMultiply:
		return "*"
	case OperatorDivide:
		return "/"
	default:
		return ""
	}
}

// String returns a lowercase name suitable for logs.
func (o Operator) String() string {
	switch o {
	case OperatorNone:
		return "none"
	case OperatorAdd:
		return "add"
	case OperatorSubtract:
		return "subtract"
	case OperatorMultiply:
		return "multiply"
	case OperatorDivide:
		return "divide"
	default:
		return fmt.Sprintf("operator(%d)", int(o))
	}
}

// IsValid reports whether o is one of the four binary operators.
func (o Operator) IsValid() bool {
	switch o {
	case OperatorAdd, OperatorSubtract, OperatorMultiply, OperatorDivide:
		return true
	default:
		return false
	}
}

// apply evaluates a <o> b with IEEE 754 semantics. Division by zero yields an
// infinity or NaN.
func (o Operator) apply(a, b float64) float64 {
	switch o {
	case OperatorAdd:
		return a + b
	case OperatorSubtract:
		return a - b
	case OperatorMultiply:
		return a * b
	case OperatorDivide:
		return a / b
	default:
		panic(fmt.Sprintf("calc: apply called with %s", o))
	}
}

// ParseOperator accepts either a glyph ("+", "-", "*", "/") or a name
// ("add", "subtract", "multiply", "divide"), case-insensitively.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add":
		return OperatorAdd, nil
	case "-", "subtract":
		return OperatorSubtract, nil
	case "*", "x", "multiply":
		return OperatorMultiply, nil
	case "/", "divide":
		return OperatorDivide, nil
	default:
		return OperatorNone, fmt.Errorf("%w: %q", ErrInvalidOperator, s)
	}
}

// MarshalText encodes the operator as its glyph; OperatorNone encodes as "".
func (o Operator) MarshalText() ([]byte, error) {
	if o != OperatorNone && !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOperator, int(o))
	}
	return []byte(o.Symbol()), nil
}

// UnmarshalText decodes a glyph or name. An empty string decodes to
// OperatorNone.
func (o *Operator) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*o = OperatorNone
		return nil
	}
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}
