// Package plugin hosts the editor engine behind a two-phase lifecycle.
//
// A host attaches the engine to a document snapshot with OnAttach, passing
// the store that holds the state of the previous session. While attached,
// the engine answers presentation queries (device list, selection, logical
// node class filter, focus path) and computes insert batches for creation
// actions. It never changes the snapshot: the host applies a batch and hands
// the new snapshot back through SetDocument (or lets Commit do both with the
// reference implementation in package edit). OnDetach saves the selection
// and returns it.
//
//	eng := plugin.OnAttach(doc, store, plugin.Options{Journal: j})
//	batch, err := eng.CreateVirtualDevice("IED2")
//	if err == nil {
//	    err = eng.Commit("virtual-device", batch)
//	}
//	state := eng.OnDetach()
//
// Every engine carries a session id. Produced and applied batches, focus
// changes, selection changes and rejected operations are written to the
// journal (see package log) under that id.
package plugin
