package calc

import "fmt"

// ActionKind names an Action variant on the wire and in logs.
type ActionKind string

// Action kinds.
const (
	KindEnterDigit        ActionKind = "digit"
	KindEnterDecimalPoint ActionKind = "decimal"
	KindChooseOperator    ActionKind = "operator"
	KindDelete            ActionKind = "delete"
	KindClear             ActionKind = "clear"
	KindCompute           ActionKind = "compute"
)

// Action is a user intent passed to Reduce. The set of implementations is
// closed: only the types declared in this package satisfy it.
type Action interface {
	Kind() ActionKind
	isAction()
}

// actionBase is embedded into every action to seal the Action interface.
type actionBase struct{}

func (actionBase) isAction() {}

// EnterDigit appends Digit (0-9) to the operand being edited.
type EnterDigit struct {
	actionBase
	Digit int
}

// EnterDecimalPoint appends "." to the operand being edited.
type EnterDecimalPoint struct{ actionBase }

// ChooseOperator sets or replaces the pending operator.
type ChooseOperator struct {
	actionBase
	Operator Operator
}

// Delete removes one character, or the pending operator.
type Delete struct{ actionBase }

// Clear discards all input.
type Clear struct{ actionBase }

// Compute evaluates the pending expression.
type Compute struct{ actionBase }

// Kind implements Action.
func (EnterDigit) Kind() ActionKind { return KindEnterDigit }

// Kind implements Action.
func (EnterDecimalPoint) Kind() ActionKind { return KindEnterDecimalPoint }

// Kind implements Action.
func (ChooseOperator) Kind() ActionKind { return KindChooseOperator }

// Kind implements Action.
func (Delete) Kind() ActionKind { return KindDelete }

// Kind implements Action.
func (Clear) Kind() ActionKind { return KindClear }

// Kind implements Action.
func (Compute) Kind() ActionKind { return KindCompute }

func (a EnterDigit) String() string { return fmt.Sprintf("digit(%d)", a.Digit) }
func (a ChooseOperator) String() string { return fmt.Sprintf("operator(%s)", a.Operator.Symbol()) }
func (EnterDecimalPoint) String() string { return string(KindEnterDecimalPoint) }
func (Delete) String() string { return string(KindDelete) }
func (Clear) String() string { return string(KindClear) }
func (Compute) String() string { return string(KindCompute) }

// NewEnterDigit returns an EnterDigit action, or ErrInvalidDigit when d is
// outside 0-9.
func NewEnterDigit(d int) (EnterDigit, error) {
	if d < 0 || d > 9 {
		return EnterDigit{}, fmt.Errorf("%w: got %d", ErrInvalidDigit, d)
	}
	return EnterDigit{Digit: d}, nil
}

// NewChooseOperator returns a ChooseOperator action for a valid operator.
func NewChooseOperator(op Operator) (ChooseOperator, error) {
	if !op.IsValid() {
		return ChooseOperator{}, fmt.Errorf("%w: %s", ErrInvalidOperator, op)
	}
	return ChooseOperator{Operator: op}, nil
}

// ParseAction builds an Action from its wire form. digit is only consulted
// for KindEnterDigit and operator only for KindChooseOperator.
func ParseAction(kind ActionKind, digit *int, operator string) (Action, error) {
	switch kind {
	case KindEnterDigit:
		if digit == nil {
			return nil, fmt.Errorf("%w: digit action requires a digit", ErrInvalidAction)
		}
		a, err := NewEnterDigit(*digit)
		if err != nil {
			return nil, err
		}
		return a, nil
	case KindEnterDecimalPoint:
		return EnterDecimalPoint{}, nil
	case KindChooseOperator:
		op, err := ParseOperator(operator)
		if err != nil {
			return nil, err
		}
		return ChooseOperator{Operator: op}, nil
	case KindDelete:
		return Delete{}, nil
	case KindClear:
		return Clear{}, nil
	case KindCompute:
		return Compute{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, kind)
	}
}
