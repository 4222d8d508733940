// Package edit defines the insert operations produced by the synthesizer and
// a reference implementation of how a host applies them.
//
// The engine never mutates a document. It returns a Batch of Insert
// descriptors; the host applies the whole batch as one transaction and hands
// the resulting snapshot back to the engine.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scl-tools/iedit-go/pkg/scl"
)

// Errors returned by Apply.
var (
	ErrUnknownParent      = errors.New("unknown parent")
	ErrReferenceNotChild  = errors.New("reference is not a child of parent")
	ErrPendingNotInserted = errors.New("pending node referenced before insertion")
	ErrEmptyNode          = errors.New("insert without node")
)

// Ref names a node: either one that exists in the snapshot or a fragment
// that an earlier insert of the same batch creates.
// The zero Ref is None.
type Ref struct {
	handle   scl.Handle
	existing bool
	pending  *scl.Element
}

// Existing refers to a node of the current snapshot.
func Existing(h scl.Handle) Ref {
	return Ref{handle: h, existing: h != scl.NoHandle}
}

// Pending refers to a fragment inserted earlier in the same batch.
func Pending(e *scl.Element) Ref {
	return Ref{pending: e}
}

// None is the absent reference: insert at the end.
var None = Ref{}

// IsNone reports whether the reference is absent.
func (r Ref) IsNone() bool {
	return r.pending == nil && !r.existing
}

// Handle returns the existing handle, or NoHandle otherwise.
func (r Ref) Handle() scl.Handle {
	if !r.existing {
		return scl.NoHandle
	}
	return r.handle
}

// Element returns the pending fragment, or nil.
func (r Ref) Element() *scl.Element {
	return r.pending
}

func (r Ref) String() string {
	switch {
	case r.pending != nil:
		return "pending:" + r.pending.Name
	case !r.existing:
		return "none"
	default:
		return fmt.Sprintf("#%d", r.handle)
	}
}

// Insert places Node under Parent immediately before Reference, or at the
// end when Reference is None.
type Insert struct {
	Parent    Ref
	Node      *scl.Element
	Reference Ref
}

// Batch is an ordered list of inserts applied as one transaction.
type Batch []Insert

// Summary returns a short description such as "IED,LNodeType,DOType".
func (b Batch) Summary() string {
	parts := make([]string, len(b))
	for i, ins := range b {
		if ins.Node == nil {
			parts[i] = "?"
			continue
		}
		parts[i] = ins.Node.Name
	}
	return strings.Join(parts, ",")
}

// Count returns the number of elements of tag across all inserted fragments.
func (b Batch) Count(tag scl.Tag) int {
	n := 0
	for _, ins := range b {
		if ins.Node != nil {
			n += ins.Node.Count(tag)
		}
	}
	return n
}

// Nodes returns the inserted fragments whose root carries tag.
func (b Batch) Nodes(tag scl.Tag) []*scl.Element {
	var out []*scl.Element
	for _, ins := range b {
		if ins.Node != nil && ins.Node.Tag() == tag {
			out = append(out, ins.Node)
		}
	}
	return out
}

// Apply applies batch to a copy of doc. On failure the original snapshot is
// returned unchanged together with the error.
func Apply(doc *scl.Document, batch Batch) (*scl.Document, error) {
	next := doc.Clone()
	placed := make(map[*scl.Element]scl.Handle)

	resolve := func(r Ref) (scl.Handle, error) {
		if r.pending == nil {
			return r.Handle(), nil
		}
		h, ok := placed[r.pending]
		if !ok {
			return scl.NoHandle, fmt.Errorf("%w: %s", ErrPendingNotInserted, r.pending.Name)
		}
		return h, nil
	}

	for i, ins := range batch {
		if ins.Node == nil {
			return doc, fmt.Errorf("insert %d: %w", i, ErrEmptyNode)
		}
		parent, err := resolve(ins.Parent)
		if err != nil {
			return doc, fmt.Errorf("insert %d parent: %w", i, err)
		}
		if !next.Valid(parent) {
			return doc, fmt.Errorf("insert %d: %w: %s", i, ErrUnknownParent, ins.Parent)
		}
		ref, err := resolve(ins.Reference)
		if err != nil {
			return doc, fmt.Errorf("insert %d reference: %w", i, err)
		}
		if ref != scl.NoHandle && next.Parent(ref) != parent {
			return doc, fmt.Errorf("insert %d: %w: %s", i, ErrReferenceNotChild, ins.Reference)
		}
		for e, h := range next.Graft(parent, ref, ins.Node) {
			placed[e] = h
		}
	}
	return next, nil
}
