package session

import "errors"

var (
	// ErrSessionClosed is returned when an action is dispatched to a stopped session.
	ErrSessionClosed = errors.New("session closed")

	// ErrMailboxFull is returned when a session has too many pending actions.
	ErrMailboxFull = errors.New("session mailbox full")

	// ErrSessionNotFound is returned when no live session has the given id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the manager is at its session limit.
	ErrTooManySessions = errors.New("too many sessions")
)
