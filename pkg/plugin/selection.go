package plugin

import (
	"slices"

	journal "github.com/scl-tools/iedit-go/pkg/log"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// DeviceNames returns the names of all devices ordered by collation.
func (e *Engine) DeviceNames() []string {
	names := e.doc.DeviceNames()
	e.sort(names)
	return names
}

// Selected returns the selected device names.
func (e *Engine) Selected() []string {
	return slices.Clone(e.selected)
}

// SelectedDevices returns the handles of the selected devices.
func (e *Engine) SelectedDevices() []scl.Handle {
	var hs []scl.Handle
	for _, name := range e.selected {
		if h := e.doc.DeviceByName(name); h != scl.NoHandle {
			hs = append(hs, h)
		}
	}
	return hs
}

// OnSelectionChange registers a listener called with the selected device
// names after every selection event.
func (e *Engine) OnSelectionChange(fn func(devices []string)) {
	e.selectionFns = append(e.selectionFns, fn)
}

// Select replaces the selection. Unknown names are dropped. The logical
// node class filter is reset when the selection actually changes.
func (e *Engine) Select(names ...string) error {
	if e.detached {
		return ErrNotAttached
	}
	e.setSelection(e.existing(names))
	return nil
}

func (e *Engine) setSelection(names []string) {
	if !slices.Equal(names, e.selected) {
		e.lnClassFilter = nil
	}
	e.selected = names
	e.notifySelection()
}

func (e *Engine) notifySelection() {
	sel := e.Selected()
	e.record(journal.Event{
		Category:  journal.CategorySelection,
		Selection: &journal.SelectionEvent{Devices: sel, LNClasses: slices.Clone(e.lnClassFilter)},
	})
	for _, fn := range e.selectionFns {
		fn(slices.Clone(sel))
	}
}

// existing filters names down to devices present in the snapshot, keeping
// order and dropping repeats.
func (e *Engine) existing(names []string) []string {
	var out []string
	for _, n := range names {
		if e.doc.DeviceByName(n) != scl.NoHandle && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func (e *Engine) firstDevice() []string {
	names := e.DeviceNames()
	if len(names) == 0 {
		return nil
	}
	return names[:1]
}

func (e *Engine) sort(s []string) {
	slices.SortStableFunc(s, e.collator.CompareString)
}
