package calc

import (
	"math"
	"strconv"
	"strings"
)

// defaultParams backs Reduce when no Params are given.
var defaultParams = NewDefaultParams()

// Reduce returns the state that follows state after action. It is pure and
// total: it never mutates its input, never fails, and returns state unchanged
// for any action that cannot be applied. A nil params uses the defaults.
func Reduce(state State, action Action, params *Params) State {
	if params == nil {
		params = defaultParams
	}

	switch a := action.(type) {
	case Clear:
		return NewState()
	case EnterDigit:
		return enterDigit(state, a.Digit, params)
	case EnterDecimalPoint:
		return enterDecimalPoint(state, params)
	case ChooseOperator:
		return chooseOperator(state, a.Operator)
	case Delete:
		return deleteLast(state)
	case Compute:
		return compute(state, params)
	default:
		return state
	}
}

// enterDigit appends d to the active operand unless it is at the length cap.
// Leading zeros are kept as typed.
func enterDigit(state State, d int, params *Params) State {
	if d < 0 || d > 9 {
		return state
	}
	digit := strconv.Itoa(d)

	if !state.HasOperator() {
		if len(state.Number1) >= params.MaxOperandLength {
			return state
		}
		return state.WithNumber1(state.Number1 + digit)
	}

	if len(state.Number2) >= params.MaxOperandLength {
		return state
	}
	return state.WithNumber2(state.Number2 + digit)
}

// enterDecimalPoint appends "." to a non-empty active operand that has no
// decimal point yet and room for one more character.
func enterDecimalPoint(state State, params *Params) State {
	target := state.ActiveOperand()
	if strings.Contains(target, ".") || target == "" || len(target) >= params.MaxOperandLength {
		return state
	}

	if !state.HasOperator() {
		return state.WithNumber1(target + ".")
	}
	return state.WithNumber2(target + ".")
}

// chooseOperator sets or replaces the pending operator once a first operand
// exists. Replacing an operator keeps Number2 as typed.
func chooseOperator(state State, op Operator) State {
	if !op.IsValid() || isBlank(state.Number1) {
		return state
	}
	return state.WithOperator(op)
}

// deleteLast removes, in order of priority, the last character of Number2,
// the pending operator, or the last character of Number1.
func deleteLast(state State) State {
	switch {
	case !isBlank(state.Number2):
		return state.WithNumber2(dropLast(state.Number2))
	case state.HasOperator():
		return state.WithoutOperator()
	case !isBlank(state.Number1):
		return state.WithNumber1(dropLast(state.Number1))
	default:
		return state
	}
}

// compute evaluates Number1 <op> Number2 and moves the result into Number1.
func compute(state State, params *Params) State {
	n1, ok := parseOperand(state.Number1)
	if !ok {
		return state
	}
	n2, ok := parseOperand(state.Number2)
	if !ok {
		return state
	}
	if !state.Operator.IsValid() {
		return state
	}

	result := state.Operator.apply(n1, n2)

	return State{
		Number1: truncate(FormatResult(result), params.MaxResultLength),
	}
}

// parseOperand reads operand text as a float64. The special values parse
// only in the exact spellings FormatResult writes; everything else must be
// a plain decimal number with an optional "E" exponent. Out-of-range values
// parse as ±Inf or 0.
func parseOperand(s string) (float64, bool) {
	switch s {
	case "Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	case "NaN":
		return math.NaN(), true
	}

	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != 'E' {
			return 0, false
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	return v, true
}

// isRangeError reports whether err only says the value over- or underflowed;
// ParseFloat still returns ±Inf or 0 in that case.
func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func dropLast(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}
