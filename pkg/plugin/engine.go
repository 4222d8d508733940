package plugin

import (
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/scl-tools/iedit-go/pkg/focus"
	journal "github.com/scl-tools/iedit-go/pkg/log"
	"github.com/scl-tools/iedit-go/pkg/overlay"
	"github.com/scl-tools/iedit-go/pkg/persistence"
	"github.com/scl-tools/iedit-go/pkg/registry"
	"github.com/scl-tools/iedit-go/pkg/scl"
	"github.com/scl-tools/iedit-go/pkg/synth"
)

// ErrNotAttached is returned by operations called after OnDetach.
var ErrNotAttached = errors.New("engine is detached")

// Options configures an Engine.
type Options struct {
	// Logger for operational output (optional, defaults to slog.Default()).
	Logger *slog.Logger

	// Journal receives journal events (optional).
	Journal journal.Logger

	// Synth configures the synthesizer (manufacturer, id source, template).
	Synth synth.Options

	// DocumentName is recorded in journal events.
	DocumentName string

	// Language selects the collation used to order device names and
	// logical node classes. The zero value uses the root collation.
	Language language.Tag

	// OnSelectionChange is registered before the initial selection event.
	OnSelectionChange func(devices []string)

	// Now returns the current time (defaults to time.Now).
	Now func() time.Time
}

// Engine is the attached editor state bound to one document snapshot at a
// time.
type Engine struct {
	doc *scl.Document
	reg *registry.Registry
	res *overlay.Resolver

	store    StateStore
	opts     Options
	logger   *slog.Logger
	journal  journal.Logger
	session  string
	collator *collate.Collator

	selected      []string
	lnClassFilter []string
	pendingSelect string
	tracker       *focus.Tracker
	selectionFns  []func([]string)
	focusFns      []func(focus.Event)
	detached      bool
}

// OnAttach binds a new engine to doc and restores the selection stored in
// store. Stored device names that no longer exist are dropped. Without a
// stored selection nothing is selected. The selection event always fires.
func OnAttach(doc *scl.Document, store StateStore, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Journal == nil {
		opts.Journal = journal.NoopLogger{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{
		store:    store,
		opts:     opts,
		logger:   opts.Logger,
		journal:  opts.Journal,
		session:  uuid.NewString(),
		collator: collate.New(opts.Language),
		tracker:  focus.NewTracker(),
	}
	if opts.OnSelectionChange != nil {
		e.selectionFns = append(e.selectionFns, opts.OnSelectionChange)
	}
	e.tracker.OnChange(e.forwardFocus)
	e.bind(doc)

	restored := e.loadPluginState()
	e.selected = e.existing(restored)

	e.logger.Debug("engine attached",
		"session", e.session,
		"devices", len(doc.Devices()),
		"selected", e.selected)
	e.record(journal.Event{
		Category: journal.CategoryLifecycle,
		Lifecycle: &journal.LifecycleEvent{
			Phase:             journal.LifecycleAttach,
			Devices:           len(doc.Devices()),
			RestoredSelection: restored,
		},
	})
	e.notifySelection()
	return e
}

// OnDetach saves the current selection to the store and returns it. The
// engine rejects further operations.
func (e *Engine) OnDetach() persistence.PluginState {
	state := persistence.PluginState{SelectedDeviceNames: append([]string{}, e.selected...)}
	if e.detached {
		return state
	}
	e.detached = true

	if e.store != nil {
		if err := e.store.SetState(state); err != nil {
			e.logger.Warn("failed to save plugin state", "error", err)
		}
	}
	e.record(journal.Event{
		Category: journal.CategoryLifecycle,
		Lifecycle: &journal.LifecycleEvent{
			Phase:   journal.LifecycleDetach,
			Devices: len(e.doc.Devices()),
		},
	})
	e.logger.Debug("engine detached", "session", e.session)
	return state
}

// SessionID returns the journal session id.
func (e *Engine) SessionID() string {
	return e.session
}

// Document returns the current snapshot.
func (e *Engine) Document() *scl.Document {
	return e.doc
}

// Resolver returns the overlay resolver of the current snapshot.
func (e *Engine) Resolver() *overlay.Resolver {
	return e.res
}

// Synthesizer returns a synthesizer over the current snapshot.
func (e *Engine) Synthesizer() *synth.Synthesizer {
	return synth.New(e.reg, e.opts.Synth)
}

// SetDocument replaces the snapshot after the host applied a batch. A
// device created by CreateVirtualDevice is selected once it exists.
// Otherwise the selection is kept for devices that still exist and falls
// back to the first device.
func (e *Engine) SetDocument(doc *scl.Document) {
	e.bind(doc)

	if name := e.pendingSelect; name != "" && doc.DeviceByName(name) != scl.NoHandle {
		e.pendingSelect = ""
		e.lnClassFilter = nil
		e.setSelection([]string{name})
		return
	}

	kept := e.existing(e.selected)
	if len(kept) == 0 {
		kept = e.firstDevice()
	}
	e.setSelection(kept)
}

func (e *Engine) bind(doc *scl.Document) {
	e.doc = doc
	e.reg = registry.New(doc)
	e.res = overlay.New(e.reg)
}

func (e *Engine) loadPluginState() []string {
	if e.store == nil {
		return nil
	}
	state, err := e.store.GetState()
	if err != nil {
		e.logger.Warn("failed to load plugin state", "error", err)
		return nil
	}
	if state == nil {
		return nil
	}
	return slices.Clone(state.SelectedDeviceNames)
}

func (e *Engine) record(ev journal.Event) {
	ev.Timestamp = e.opts.Now()
	ev.SessionID = e.session
	ev.Document = e.opts.DocumentName
	e.journal.Log(ev)
}
