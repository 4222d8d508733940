package log

import "testing"

func TestNoopLoggerImplementsLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{SessionID: "ignored"})
}
