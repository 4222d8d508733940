// Package registry locates catalogue type definitions by kind and id.
//
// A Registry is an index built once per resolution pass over an immutable
// document snapshot. Lookups are exact, case-sensitive id matches scoped to
// the DataTypeTemplates section. An id that is missing, or that is declared
// more than once for the same kind, resolves to nothing: absent is a normal
// outcome and callers treat it as "no children to expand".
package registry

import (
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// RootNodeClass is the lnClass of the canonical root node type.
const RootNodeClass = "LLN0"

type key struct {
	kind scl.DefinitionKind
	id   string
}

// Registry indexes the definitions of one document snapshot.
type Registry struct {
	doc       *scl.Document
	catalogue scl.Handle
	byKey     map[key]scl.Handle
	ambiguous map[key]bool
	ordered   map[scl.DefinitionKind][]scl.Handle
}

// New indexes the catalogue of doc.
func New(doc *scl.Document) *Registry {
	r := &Registry{
		doc:       doc,
		catalogue: doc.Catalogue(),
		byKey:     make(map[key]scl.Handle),
		ambiguous: make(map[key]bool),
		ordered:   make(map[scl.DefinitionKind][]scl.Handle),
	}

	for _, h := range doc.Children(r.catalogue) {
		kind := doc.Tag(h).DefinitionKind()
		if kind == scl.DefinitionNone {
			continue
		}
		r.ordered[kind] = append(r.ordered[kind], h)

		id, ok := doc.Attr(h, "id")
		if !ok {
			continue
		}
		k := key{kind: kind, id: id}
		if _, dup := r.byKey[k]; dup {
			r.ambiguous[k] = true
			continue
		}
		r.byKey[k] = h
	}
	return r
}

// Document returns the snapshot the registry was built from.
func (r *Registry) Document() *scl.Document {
	return r.doc
}

// Catalogue returns the DataTypeTemplates handle, or NoHandle.
func (r *Registry) Catalogue() scl.Handle {
	return r.catalogue
}

// Find returns the definition of kind with the given id.
func (r *Registry) Find(kind scl.DefinitionKind, id string) (scl.Handle, bool) {
	k := key{kind: kind, id: id}
	if r.ambiguous[k] {
		return scl.NoHandle, false
	}
	h, ok := r.byKey[k]
	if !ok {
		return scl.NoHandle, false
	}
	return h, true
}

// Has reports whether any definition of kind uses id, including ambiguous ones.
func (r *Registry) Has(kind scl.DefinitionKind, id string) bool {
	_, ok := r.byKey[key{kind: kind, id: id}]
	return ok
}

// OfKind returns all definitions of kind in catalogue order.
func (r *Registry) OfKind(kind scl.DefinitionKind) []scl.Handle {
	return append([]scl.Handle(nil), r.ordered[kind]...)
}

// IDs returns the ids of all definitions of kind in catalogue order.
func (r *Registry) IDs(kind scl.DefinitionKind) []string {
	var ids []string
	for _, h := range r.ordered[kind] {
		if id, ok := r.doc.Attr(h, "id"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// CanonicalRootType returns the first NodeType whose lnClass marks it as the
// root node type. Types without an id cannot be referenced and are skipped.
func (r *Registry) CanonicalRootType() (scl.Handle, bool) {
	for _, h := range r.ordered[scl.DefinitionNodeType] {
		if r.doc.Get(h, "lnClass") == RootNodeClass && r.doc.Get(h, "id") != "" {
			return h, true
		}
	}
	return scl.NoHandle, false
}

// FindDefinition is a one-shot lookup for callers without a registry.
func FindDefinition(doc *scl.Document, kind scl.DefinitionKind, id string) (scl.Handle, bool) {
	return New(doc).Find(kind, id)
}

// FindDefinitionsOfKind is a one-shot listing for callers without a registry.
func FindDefinitionsOfKind(doc *scl.Document, kind scl.DefinitionKind) []scl.Handle {
	return New(doc).OfKind(kind)
}
