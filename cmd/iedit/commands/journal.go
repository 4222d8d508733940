package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	journal "github.com/scl-tools/iedit-go/pkg/log"
)

var journalCmd = &cobra.Command{
	Use:   "journal [flags] <file.ijl>",
	Short: "View an edit journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter journal.Filter
		filter.SessionID, _ = cmd.Flags().GetString("session")
		filter.Device, _ = cmd.Flags().GetString("device")

		if name, _ := cmd.Flags().GetString("category"); name != "" {
			c, ok := journal.ParseCategory(strings.ToUpper(name))
			if !ok {
				return fmt.Errorf("unknown category %q", name)
			}
			filter.Category = &c
		}
		if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
			start := time.Now().Add(-since)
			filter.TimeStart = &start
		}

		return RunJournal(args[0], filter, cmd.OutOrStdout())
	},
}

func init() {
	journalCmd.Flags().String("category", "", "only events of this category (edit, focus, selection, lifecycle, error)")
	journalCmd.Flags().String("session", "", "only events of this session id")
	journalCmd.Flags().String("device", "", "only events concerning this device")
	journalCmd.Flags().Duration("since", 0, "only events newer than this duration")
}

// RunJournal prints the matching events of a journal file.
func RunJournal(path string, filter journal.Filter, w io.Writer) error {
	reader, err := journal.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
		count++
	}
	fmt.Fprintf(w, "%d events\n", count)
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event journal.Event) {
	// Header line: timestamp [session:id] CATEGORY device
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	header := fmt.Sprintf("%s [session:%s] %s", ts, shortenSessionID(event.SessionID), event.Category)
	if event.Device != "" {
		header += " " + event.Device
	}
	fmt.Fprintln(w, header)

	switch {
	case event.Batch != nil:
		b := event.Batch
		fmt.Fprintf(w, "  %s %s: %d inserts (%s)\n", b.Phase, b.Operation, b.Inserts, b.Summary)
		if len(b.CreatedTypes) > 0 {
			fmt.Fprintf(w, "  New types: %s\n", strings.Join(b.CreatedTypes, ", "))
		}
	case event.Focus != nil:
		verb := "Focus"
		if event.Focus.Blur {
			verb = "Blur"
		}
		fmt.Fprintf(w, "  %s: %s\n", verb, strings.Join(event.Focus.Path, " / "))
	case event.Selection != nil:
		fmt.Fprintf(w, "  Devices: %s\n", strings.Join(event.Selection.Devices, ", "))
		if len(event.Selection.LNClasses) > 0 {
			fmt.Fprintf(w, "  Classes: %s\n", strings.Join(event.Selection.LNClasses, ", "))
		}
	case event.Lifecycle != nil:
		fmt.Fprintf(w, "  %s with %d devices\n", event.Lifecycle.Phase, event.Lifecycle.Devices)
		if len(event.Lifecycle.RestoredSelection) > 0 {
			fmt.Fprintf(w, "  Restored: %s\n", strings.Join(event.Lifecycle.RestoredSelection, ", "))
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  %s failed: %s", event.Error.Operation, event.Error.Message)
		if event.Error.Code != "" {
			fmt.Fprintf(w, " [%s]", event.Error.Code)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
