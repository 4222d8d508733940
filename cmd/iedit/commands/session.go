package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	journal "github.com/scl-tools/iedit-go/pkg/log"
	"github.com/scl-tools/iedit-go/pkg/persistence"
	"github.com/scl-tools/iedit-go/pkg/plugin"
	"github.com/scl-tools/iedit-go/pkg/scl"
	"github.com/scl-tools/iedit-go/pkg/synth"
)

// PluginName keys the editor's entry in the state file.
const PluginName = "ied-editor"

// Session is an engine attached to a document read from disk.
type Session struct {
	Path   string
	Engine *plugin.Engine
	Logger *slog.Logger

	fileLog *journal.FileLogger
}

// OpenSession reads the document at path and attaches an engine configured
// from cfg. Log output goes to logw.
func OpenSession(cfg *Config, path string, logw io.Writer) (*Session, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(logw, &slog.HandlerOptions{Level: level}))

	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	s := &Session{Path: path, Logger: logger}
	var loggers []journal.Logger
	if level <= slog.LevelDebug {
		loggers = append(loggers, journal.NewSlogAdapter(logger))
	}
	if cfg.Journal != "" {
		fl, err := journal.NewFileLogger(cfg.Journal)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		s.fileLog = fl
		loggers = append(loggers, fl)
	}

	var store plugin.StateStore = persistence.NewMemoryStore()
	if cfg.State != "" {
		store = persistence.NewFileStore(cfg.State, PluginName)
	}

	s.Engine = plugin.OnAttach(doc, store, plugin.Options{
		Logger:       logger,
		Journal:      journal.NewMultiLogger(loggers...),
		Synth:        synth.Options{Manufacturer: cfg.Manufacturer},
		DocumentName: filepath.Base(path),
	})
	return s, nil
}

// Close detaches the engine, saving the selection, and closes the journal.
func (s *Session) Close() error {
	s.Engine.OnDetach()
	if s.fileLog != nil {
		return s.fileLog.Close()
	}
	return nil
}

// Save writes the current document to path, or to the session's own file
// when path is empty. The file is replaced only after encoding succeeded.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.Path
	}
	var buf bytes.Buffer
	if err := scl.Encode(&buf, s.Engine.Document()); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	s.Logger.Info("document saved", "path", path)
	return nil
}

func readDocument(path string) (*scl.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc, err := scl.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
