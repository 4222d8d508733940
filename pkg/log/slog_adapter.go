package log

import (
	"context"
	"log/slog"
	"strings"
)

// SlogAdapter writes journal events to an slog.Logger.
// Useful for development when you want to see the journal in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	if event.Document != "" {
		attrs = append(attrs, slog.String("document", event.Document))
	}
	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}

	// Add type-specific attributes
	switch {
	case event.Batch != nil:
		attrs = append(attrs,
			slog.String("operation", event.Batch.Operation),
			slog.String("phase", event.Batch.Phase.String()),
			slog.Int("inserts", event.Batch.Inserts),
			slog.String("summary", event.Batch.Summary),
		)
		if len(event.Batch.CreatedTypes) > 0 {
			attrs = append(attrs, slog.String("created_types", strings.Join(event.Batch.CreatedTypes, ",")))
		}
	case event.Focus != nil:
		attrs = append(attrs,
			slog.Bool("blur", event.Focus.Blur),
			slog.String("path", strings.Join(event.Focus.Path, " / ")),
		)
	case event.Selection != nil:
		attrs = append(attrs, slog.String("devices", strings.Join(event.Selection.Devices, ",")))
		if len(event.Selection.LNClasses) > 0 {
			attrs = append(attrs, slog.String("ln_classes", strings.Join(event.Selection.LNClasses, ",")))
		}
	case event.Lifecycle != nil:
		attrs = append(attrs,
			slog.String("phase", event.Lifecycle.Phase.String()),
			slog.Int("devices", event.Lifecycle.Devices),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("operation", event.Error.Operation),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Code != "" {
			attrs = append(attrs, slog.String("error_code", event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "journal", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
