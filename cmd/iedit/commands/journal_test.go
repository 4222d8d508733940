package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	journal "github.com/scl-tools/iedit-go/pkg/log"
	"github.com/scl-tools/iedit-go/pkg/plugin"
)

// recordSession runs a short editing session writing to a journal file.
func recordSession(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edits.ijl")
	s := openSample(t, &Config{LogLevel: "error", Output: DefaultOutput, Journal: path})

	batch, err := s.Engine.CreateVirtualDevice("IED2")
	require.NoError(t, err)
	require.NoError(t, s.Engine.Commit(plugin.OpVirtualDevice, batch))
	_, err = s.Engine.CreateVirtualDevice("IED 3")
	require.Error(t, err)
	require.NoError(t, s.Close())
	return path
}

func TestRunJournal(t *testing.T) {
	path := recordSession(t)

	var buf bytes.Buffer
	require.NoError(t, RunJournal(path, journal.Filter{}, &buf))
	out := buf.String()

	assert.Contains(t, out, "LIFECYCLE")
	assert.Contains(t, out, "ATTACH with 2 devices")
	assert.Contains(t, out, "PRODUCED virtual-device")
	assert.Contains(t, out, "APPLIED virtual-device")
	assert.Contains(t, out, "Devices: IED2")
	assert.Contains(t, out, "virtual-device failed:")
	assert.Contains(t, out, "[INVALID_CHARACTERS]")
	assert.Contains(t, out, "DETACH with 3 devices")
}

func TestRunJournalFiltered(t *testing.T) {
	path := recordSession(t)

	cat := journal.CategoryError
	var buf bytes.Buffer
	require.NoError(t, RunJournal(path, journal.Filter{Category: &cat}, &buf))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "1 events\n"), out)
	assert.NotContains(t, out, "LIFECYCLE")

	buf.Reset()
	require.NoError(t, RunJournal(path, journal.Filter{Device: "IED2"}, &buf))
	assert.NotContains(t, buf.String(), "ATTACH")
	assert.Contains(t, buf.String(), "APPLIED")
}

func TestRunJournalMissingFile(t *testing.T) {
	err := RunJournal(filepath.Join(t.TempDir(), "none.ijl"), journal.Filter{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestShortenSessionID(t *testing.T) {
	assert.Equal(t, "abcdefgh", shortenSessionID("abcdefgh-1234"))
	assert.Equal(t, "abc", shortenSessionID("abc"))
}
