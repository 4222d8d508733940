package log

// Logger is the interface hosts implement to receive journal events.
// Pass nil or NoopLogger to disable the journal.
type Logger interface {
	// Log records a journal event. Implementations must be thread-safe.
	Log(event Event)
}

// NoopLogger discards all events. Use when the journal is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
