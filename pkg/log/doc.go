// Package log provides the structured edit journal of the IED editor.
//
// This package defines the Logger interface and Event types for recording
// what an editing session did: which insert batches were produced and
// applied, how focus and device selection moved, and when the engine was
// attached to or detached from its host. It is separate from operational
// logging (slog); the journal is a machine-readable trace for debugging and
// for replaying a session's decisions.
//
// # Basic Usage
//
// Hosts configure the journal by providing a Logger implementation:
//
//	// For development: log to console via slog
//	opts.Journal = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a binary file
//	opts.Journal, _ = log.NewFileLogger("session.ijl")
//
//	// Both: use MultiLogger
//	opts.Journal = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Every event carries a session id and one payload:
//   - Edit batches (BatchEvent), when produced and when applied
//   - Focus path changes (FocusEvent)
//   - Device selection changes (SelectionEvent)
//   - Attach and detach (LifecycleEvent)
//   - Rejected operations (ErrorEventData)
//
// # File Format
//
// Journal files are a stream of CBOR-encoded events with integer keys. The
// "iedit journal" command decodes and filters them.
package log
