// Package focus tracks the title path of the focused instance node.
package focus

import (
	"slices"

	"github.com/scl-tools/iedit-go/pkg/naming"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// EventKind tells focus and blur events apart.
type EventKind uint8

const (
	EventFocus EventKind = iota
	EventBlur
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventFocus:
		return "FOCUS"
	case EventBlur:
		return "BLUR"
	default:
		return "UNKNOWN"
	}
}

// Event carries the title path after a transition.
type Event struct {
	Kind EventKind
	Path []string
}

// Tracker holds the ancestor-then-self titles of the focused node.
// On blur the last title is dropped and the ancestors remain.
type Tracker struct {
	path      []string
	focused   bool
	listeners []func(Event)
}

// NewTracker creates a tracker with an empty path.
func NewTracker() *Tracker {
	return &Tracker{}
}

// OnChange registers a listener called after every transition.
func (t *Tracker) OnChange(fn func(Event)) {
	t.listeners = append(t.listeners, fn)
}

// Focus sets the path to the titles of the ancestors of h followed by the
// title of h.
func (t *Tracker) Focus(doc *scl.Document, h scl.Handle) []string {
	return t.FocusTitles(naming.Path(doc, h))
}

// FocusTitles sets the path from precomputed titles, leaf last.
func (t *Tracker) FocusTitles(titles []string) []string {
	t.path = slices.Clone(titles)
	t.focused = len(t.path) > 0
	t.notify(EventFocus)
	return t.Path()
}

// Blur drops the focused node's own title. Blurring without focus does
// nothing.
func (t *Tracker) Blur() []string {
	if !t.focused {
		return t.Path()
	}
	t.path = t.path[:len(t.path)-1]
	t.focused = false
	t.notify(EventBlur)
	return t.Path()
}

// Path returns a copy of the current titles.
func (t *Tracker) Path() []string {
	return slices.Clone(t.path)
}

// Focused reports whether the path ends with a focused node.
func (t *Tracker) Focused() bool {
	return t.focused
}

func (t *Tracker) notify(kind EventKind) {
	for _, fn := range t.listeners {
		fn(Event{Kind: kind, Path: t.Path()})
	}
}
