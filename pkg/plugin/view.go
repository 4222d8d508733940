package plugin

import (
	"slices"

	"github.com/scl-tools/iedit-go/pkg/focus"
	"github.com/scl-tools/iedit-go/pkg/inspect"
	journal "github.com/scl-tools/iedit-go/pkg/log"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// Focus makes h the focused node and returns its title path.
func (e *Engine) Focus(h scl.Handle) []string {
	return e.tracker.Focus(e.doc, h)
}

// FocusTitles focuses a node whose titles were computed by the caller, for
// nodes below a logical node that have no element of their own.
func (e *Engine) FocusTitles(titles []string) []string {
	return e.tracker.FocusTitles(titles)
}

// Blur drops the focused node's own title from the path.
func (e *Engine) Blur() []string {
	return e.tracker.Blur()
}

// FocusPath returns the current title path.
func (e *Engine) FocusPath() []string {
	return e.tracker.Path()
}

// OnFocusChange registers a listener for focus and blur transitions.
func (e *Engine) OnFocusChange(fn func(focus.Event)) {
	e.focusFns = append(e.focusFns, fn)
}

func (e *Engine) forwardFocus(ev focus.Event) {
	device := ""
	if len(ev.Path) > 0 {
		device = ev.Path[0]
	}
	e.record(journal.Event{
		Category: journal.CategoryFocus,
		Device:   device,
		Focus:    &journal.FocusEvent{Blur: ev.Kind == focus.EventBlur, Path: slices.Clone(ev.Path)},
	})
	for _, fn := range e.focusFns {
		fn(ev)
	}
}

// Tree builds the printable tree of the selected devices with the class
// filter applied and the resolved overlay under every logical node.
func (e *Engine) Tree() []*inspect.TreeNode {
	opts := inspect.TreeOptions{Devices: e.Selected(), Overlay: true}
	if len(e.lnClassFilter) > 0 {
		opts.IncludeLN = e.IncludeLN
	}
	if len(opts.Devices) == 0 {
		return nil
	}
	return inspect.NewInspector(e.doc).Tree(opts)
}
