// Package session owns the mutable "current state" cell of each calculator.
//
// A Session runs a single goroutine that applies actions one at a time in the
// order they arrive, publishes a StateChangedEvent for each transition, and
// replies to the caller with the resulting state. Callers never touch the
// state directly; the session goroutine is the only writer.
//
// A Manager creates sessions, looks them up by id, caps how many may be live
// at once, and evicts sessions that have been idle for too long.
package session
