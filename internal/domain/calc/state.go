package calc

import (
	"errors"
	"fmt"
	"strings"
)

// Phase is the editing phase implied by a State's fields.
type Phase string

// Phases.
const (
	// PhaseEnteringFirst means no operator is pending; digits go to Number1.
	PhaseEnteringFirst Phase = "entering_first"
	// PhaseEnteringSecond means an operator is pending; digits go to Number2.
	PhaseEnteringSecond Phase = "entering_second"
)

// State is an immutable snapshot of calculator memory. Every transition
// produces a new value; State is comparable with ==.
type State struct {
	Number1  string   `json:"number1"`
	Number2  string   `json:"number2"`
	Operator Operator `json:"operator"`
}

// NewState returns the empty state.
func NewState() State {
	return State{}
}

// WithNumber1 returns a copy of s with Number1 replaced.
func (s State) WithNumber1(v string) State {
	s.Number1 = v
	return s
}

// WithNumber2 returns a copy of s with Number2 replaced.
func (s State) WithNumber2(v string) State {
	s.Number2 = v
	return s
}

// WithOperator returns a copy of s with the pending operator replaced.
func (s State) WithOperator(op Operator) State {
	s.Operator = op
	return s
}

// WithoutOperator returns a copy of s with no pending operator.
func (s State) WithoutOperator() State {
	s.Operator = OperatorNone
	return s
}

// HasOperator reports whether an operator is pending.
func (s State) HasOperator() bool {
	return s.Operator != OperatorNone
}

// Phase derives the editing phase from the fields.
func (s State) Phase() Phase {
	if s.HasOperator() {
		return PhaseEnteringSecond
	}
	return PhaseEnteringFirst
}

// ActiveOperand returns the operand that digits are currently appended to.
func (s State) ActiveOperand() string {
	if s.HasOperator() {
		return s.Number2
	}
	return s.Number1
}

// IsEmpty reports whether s equals the default state.
func (s State) IsEmpty() bool {
	return s == State{}
}

// Display renders the line a shell shows: number1, operator glyph, number2.
func (s State) Display() string {
	return s.Number1 + s.Operator.Symbol() + s.Number2
}

// String implements fmt.Stringer.
func (s State) String() string {
	return fmt.Sprintf("{%q %s %q}", s.Number1, s.Operator, s.Number2)
}

// resultWords are the non-numeric results FormatResult writes.
var resultWords = [...]string{"Infinity", "NaN"}

// NewStateFromFields builds a State from externally supplied fields and
// checks the invariants Reduce maintains:
//
//   - the operator is either absent or one of the four binary operators
//   - Number2 is empty unless an operator is pending
//   - each operand holds at most one '.' and does not start with one
//   - Number2 is digits and '.' only, at most MaxOperandLength long
//   - Number1 is either typed input (as Number2) or text derived from a
//     computed result, at most max(MaxOperandLength, MaxResultLength) long
func NewStateFromFields(number1, number2 string, op Operator, params *Params) (State, error) {
	if params == nil {
		params = defaultParams
	}

	if op != OperatorNone && !op.IsValid() {
		return State{}, fmt.Errorf("%w: %w", ErrInvalidState, ErrInvalidOperator)
	}
	if number2 != "" && op == OperatorNone {
		return State{}, fmt.Errorf("%w: number2 set without an operator", ErrInvalidState)
	}
	if err := checkTyped(number2, params.MaxOperandLength); err != nil {
		return State{}, fmt.Errorf("%w: number2 %v", ErrInvalidState, err)
	}
	if err := checkTyped(number1, params.MaxOperandLength); err != nil {
		limit := max(params.MaxOperandLength, params.MaxResultLength)
		if resErr := checkResultText(number1, limit); resErr != nil {
			return State{}, fmt.Errorf("%w: number1 %v", ErrInvalidState, err)
		}
	}

	return State{Number1: number1, Number2: number2, Operator: op}, nil
}

// checkTyped validates an operand built only from EnterDigit and
// EnterDecimalPoint.
func checkTyped(v string, limit int) error {
	if len(v) > limit {
		return fmt.Errorf("longer than %d characters", limit)
	}
	if strings.HasPrefix(v, ".") {
		return errors.New("starts with a decimal point")
	}
	if strings.Count(v, ".") > 1 {
		return errors.New("has more than one decimal point")
	}
	for _, r := range v {
		if (r < '0' || r > '9') && r != '.' {
			return fmt.Errorf("contains %q", r)
		}
	}
	return nil
}

// checkResultText validates an operand that started life as a Compute result
// and may since have been cut, shortened by Delete or extended by typing: an
// optional sign, then either a leading part of "Infinity" or "NaN", or a
// decimal mantissa with an optional "E" exponent, then typed digits.
func checkResultText(v string, limit int) error {
	if len(v) > limit {
		return fmt.Errorf("longer than %d characters", limit)
	}
	if strings.HasPrefix(v, ".") || strings.Count(v, ".") > 1 {
		return errors.New("malformed decimal point")
	}

	body := strings.TrimPrefix(v, "-")
	for _, word := range resultWords {
		n := commonPrefixLen(body, word)
		if n == 0 {
			continue
		}
		if !isTypedText(body[n:]) {
			return fmt.Errorf("unexpected %q after %q", body[n:], body[:n])
		}
		return nil
	}

	mantissa, exponent, _ := strings.Cut(body, "E")
	if !isTypedText(mantissa) || !isTypedText(strings.TrimPrefix(exponent, "-")) {
		return fmt.Errorf("malformed number %q", v)
	}
	return nil
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// isTypedText reports whether v holds only digits and decimal points.
func isTypedText(v string) bool {
	for _, r := range v {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
