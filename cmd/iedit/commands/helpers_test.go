package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scl-tools/iedit-go/internal/scltest"
	"github.com/scl-tools/iedit-go/pkg/plugin"
)

// writeSample writes the sample document into a temp dir and returns its
// path.
func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.scd")
	require.NoError(t, os.WriteFile(path, scltest.SampleBytes(), 0644))
	return path
}

// openSample opens a session on a fresh copy of the sample document.
func openSample(t *testing.T, cfg *Config) *Session {
	t.Helper()
	if cfg == nil {
		cfg = &Config{LogLevel: "error", Output: DefaultOutput}
	}
	s, err := OpenSession(cfg, writeSample(t), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEngine(t *testing.T) *plugin.Engine {
	t.Helper()
	return plugin.OnAttach(scltest.Sample(t), nil, plugin.Options{})
}
