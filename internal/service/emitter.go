package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples services from the delivery transport
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for announcing document and store changes.
// The HTTP layer can implement it with server-sent events and the MCP
// server with notifications; services never know the transport, which
// makes them independently testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// NoopEmitter discards all events. Used by CLI one-shot commands.
type NoopEmitter struct{}

func (NoopEmitter) Emit(_ context.Context, _ string, _ any) {}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}
