package api

import (
	"time"

	"github.com/phrazzld/calculator-api/internal/domain/calc"
	"github.com/phrazzld/calculator-api/internal/session"
)

// StateResponse is the wire form of a calculator state.
type StateResponse struct {
	Number1  string `json:"number1"`
	Number2  string `json:"number2"`
	Operator string `json:"operator"`
	Display  string `json:"display"`
	Phase    string `json:"phase"`
}

// NewStateResponse converts a calc.State to its wire form.
func NewStateResponse(s calc.State) StateResponse {
	return StateResponse{
		Number1:  s.Number1,
		Number2:  s.Number2,
		Operator: s.Operator.Symbol(),
		Display:  s.Display(),
		Phase:    string(s.Phase()),
	}
}

// SessionResponse describes a session and its current state.
type SessionResponse struct {
	ID         string        `json:"id"`
	Seq        uint64        `json:"seq"`
	State      StateResponse `json:"state"`
	CreatedAt  time.Time     `json:"created_at"`
	LastActive time.Time     `json:"last_active"`
}

func sessionToResponse(s *session.Session) SessionResponse {
	state, seq := s.Snapshot()
	return sessionTransitionToResponse(s, session.Transition{State: state, Seq: seq})
}

// sessionTransitionToResponse describes s as of t, e.g. the state an action
// produced rather than whatever is current by now.
func sessionTransitionToResponse(s *session.Session, t session.Transition) SessionResponse {
	return SessionResponse{
		ID:         s.ID().String(),
		Seq:        t.Seq,
		State:      NewStateResponse(t.State),
		CreatedAt:  s.CreatedAt(),
		LastActive: s.LastActive(),
	}
}

// StateSnapshot is a client-supplied state used to seed a new session.
type StateSnapshot struct {
	Number1  string `json:"number1" validate:"max=64"`
	Number2  string `json:"number2" validate:"max=64"`
	Operator string `json:"operator" validate:"max=16"`
}

// ToState validates the snapshot against params.
func (s StateSnapshot) ToState(params *calc.Params) (calc.State, error) {
	var op calc.Operator
	if err := op.UnmarshalText([]byte(s.Operator)); err != nil {
		return calc.State{}, err
	}
	return calc.NewStateFromFields(s.Number1, s.Number2, op, params)
}

// CreateSessionRequest is the optional body of POST /api/sessions.
type CreateSessionRequest struct {
	State *StateSnapshot `json:"state"`
}

// ActionRequest is a single action in wire form.
type ActionRequest struct {
	Type     string `json:"type" validate:"required,oneof=digit decimal operator delete clear compute"`
	Digit    *int   `json:"digit,omitempty" validate:"omitempty,min=0,max=9"`
	Operator string `json:"operator,omitempty" validate:"max=16"`
}

// ToAction converts the request to a calc.Action.
func (r ActionRequest) ToAction() (calc.Action, error) {
	return calc.ParseAction(calc.ActionKind(r.Type), r.Digit, r.Operator)
}

// KeysRequest carries a keypad string such as "12+3=".
type KeysRequest struct {
	Keys string `json:"keys" validate:"required,max=256"`
}
