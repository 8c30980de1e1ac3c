package calc

import "fmt"

// ParseKey maps a single keypad key to its action:
//
//	0-9      EnterDigit
//	.        EnterDecimalPoint
//	+ - * /  ChooseOperator
//	=        Compute
//	C c      Clear
//	< \b     Delete
func ParseKey(r rune) (Action, error) {
	switch {
	case r >= '0' && r <= '9':
		return EnterDigit{Digit: int(r - '0')}, nil
	case r == '.':
		return EnterDecimalPoint{}, nil
	case r == '=':
		return Compute{}, nil
	case r == 'C' || r == 'c':
		return Clear{}, nil
	case r == '<' || r == '\b':
		return Delete{}, nil
	case r == '+', r == '-', r == '*', r == '/':
		op, _ := ParseOperator(string(r))
		return ChooseOperator{Operator: op}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, r)
	}
}

// ParseKeys maps every key of s to an action. Spaces are ignored. The first
// unknown key aborts parsing.
func ParseKeys(s string) ([]Action, error) {
	actions := make([]Action, 0, len(s))
	for i, r := range s {
		if r == ' ' {
			continue
		}
		a, err := ParseKey(r)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
