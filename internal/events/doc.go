// Package events provides types and interfaces for publishing calculator
// state transitions.
//
// A session emits a StateChangedEvent after every action it applies. Emitters
// fan the event out to registered handlers without the session knowing who
// is listening, which keeps the session package free of transport concerns.
//
// The primary components are:
// - StateChangedEvent: One applied action with the states before and after it
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
