package plugin

import (
	"slices"

	journal "github.com/scl-tools/iedit-go/pkg/log"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// LNClasses returns the unique logical node classes of the selected
// devices ordered by collation.
func (e *Engine) LNClasses() []string {
	var classes []string
	for _, dev := range e.SelectedDevices() {
		for _, ln := range e.doc.Descendants(dev, scl.TagLN0, scl.TagLN) {
			c := e.doc.Get(ln, "lnClass")
			if c != "" && !slices.Contains(classes, c) {
				classes = append(classes, c)
			}
		}
	}
	e.sort(classes)
	return classes
}

// LNClassFilter returns the selected logical node classes. Empty means all.
func (e *Engine) LNClassFilter() []string {
	return slices.Clone(e.lnClassFilter)
}

// SetLNClassFilter selects logical node classes. An empty list shows all.
func (e *Engine) SetLNClassFilter(classes ...string) error {
	if e.detached {
		return ErrNotAttached
	}
	var filter []string
	for _, c := range classes {
		if !slices.Contains(filter, c) {
			filter = append(filter, c)
		}
	}
	e.lnClassFilter = filter
	e.record(journal.Event{
		Category:  journal.CategorySelection,
		Selection: &journal.SelectionEvent{Devices: e.Selected(), LNClasses: slices.Clone(filter)},
	})
	return nil
}

// IncludeLN reports whether the logical node passes the class filter.
func (e *Engine) IncludeLN(ln scl.Handle) bool {
	return len(e.lnClassFilter) == 0 || slices.Contains(e.lnClassFilter, e.doc.Get(ln, "lnClass"))
}

// VisibleLogicalNodes returns the logical nodes of ldevice that pass the
// class filter.
func (e *Engine) VisibleLogicalNodes(ldevice scl.Handle) []scl.Handle {
	var out []scl.Handle
	for _, ln := range e.doc.LogicalNodes(ldevice) {
		if e.IncludeLN(ln) {
			out = append(out, ln)
		}
	}
	return out
}

// VisibleLDevices returns the logical devices of server with at least one
// logical node passing the class filter. Without a filter all logical
// devices are visible.
func (e *Engine) VisibleLDevices(server scl.Handle) []scl.Handle {
	lds := e.doc.ChildrenByTag(server, scl.TagLDevice)
	if len(e.lnClassFilter) == 0 {
		return lds
	}
	var out []scl.Handle
	for _, ld := range lds {
		if len(e.VisibleLogicalNodes(ld)) > 0 {
			out = append(out, ld)
		}
	}
	return out
}
