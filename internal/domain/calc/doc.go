// Package calc implements the calculator core: an immutable State holding the
// operands typed so far, a closed vocabulary of user Actions, and a pure
// Reduce function mapping (state, action) to the next state.
//
// The core never performs I/O and never reports failures. An action that
// cannot be applied (an operand at its length cap, a second decimal point, a
// compute with a missing operand, ...) yields the input state unchanged, and
// callers observe rejection only as "nothing changed".
//
// Callers that share one State between goroutines must funnel actions through
// a single serialization point; see package session.
package calc
