// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and calculator sessions, translating HTTP and WebSocket traffic into
// actions dispatched to a session.
package api
