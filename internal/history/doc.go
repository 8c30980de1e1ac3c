// Package history records concurrent calls against calculator sessions and
// checks that the recorded history is linearizable with respect to the
// reducer.
//
// A history is linearizable when every call can be assigned a single instant
// between its invocation and its return such that replaying the calls in that
// order through the reducer yields exactly the states the callers observed.
// For a session this means the session goroutine really is the only
// serialization point. Histories are kept in memory only.
package history
