package scl

import (
	"slices"
	"strings"
)

// Handle addresses a node inside a Document arena.
// Handles are stable for the lifetime of the document and its clones.
type Handle int32

// NoHandle is the absent handle.
const NoHandle Handle = -1

// Attr is a single element attribute. Name keeps any namespace prefix.
type Attr struct {
	Name  string
	Value string
}

type node struct {
	tag      Tag
	name     string
	attrs    []Attr
	text     string
	parent   Handle
	children []Handle
}

// Document is an arena-backed element tree.
//
// Engine packages only read a Document. Mutation happens on a Clone through
// the builder methods, which is how edit batches are applied.
type Document struct {
	nodes []node
	root  Handle
}

// NewDocument creates an empty document without a root element.
func NewDocument() *Document {
	return &Document{root: NoHandle}
}

// NewSCLDocument creates a document with an empty SCL root element.
func NewSCLDocument() *Document {
	d := NewDocument()
	d.SetRoot("SCL")
	return d
}

// Root returns the root element handle, or NoHandle for an empty document.
func (d *Document) Root() Handle {
	return d.root
}

// Len returns the number of nodes in the arena.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Valid reports whether h addresses a node of this document.
func (d *Document) Valid(h Handle) bool {
	return d != nil && h >= 0 && int(h) < len(d.nodes)
}

// Tag returns the element variant of h.
func (d *Document) Tag(h Handle) Tag {
	if !d.Valid(h) {
		return TagUnknown
	}
	return d.nodes[h].tag
}

// Name returns the raw element name of h including any prefix.
func (d *Document) Name(h Handle) string {
	if !d.Valid(h) {
		return ""
	}
	return d.nodes[h].name
}

// Attr returns the value of an attribute and whether it is present.
func (d *Document) Attr(h Handle, name string) (string, bool) {
	if !d.Valid(h) {
		return "", false
	}
	for _, a := range d.nodes[h].attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Get returns the value of an attribute or the empty string.
func (d *Document) Get(h Handle, name string) string {
	v, _ := d.Attr(h, name)
	return v
}

// Attrs returns a copy of the attributes of h in document order.
func (d *Document) Attrs(h Handle) []Attr {
	if !d.Valid(h) {
		return nil
	}
	return slices.Clone(d.nodes[h].attrs)
}

// Text returns the trimmed character data of h.
func (d *Document) Text(h Handle) string {
	if !d.Valid(h) {
		return ""
	}
	return d.nodes[h].text
}

// Parent returns the parent of h, or NoHandle for the root.
func (d *Document) Parent(h Handle) Handle {
	if !d.Valid(h) {
		return NoHandle
	}
	return d.nodes[h].parent
}

// Children returns the child handles of h in document order.
func (d *Document) Children(h Handle) []Handle {
	if !d.Valid(h) {
		return nil
	}
	return slices.Clone(d.nodes[h].children)
}

// ChildrenByTag returns the direct children of h that carry one of tags.
func (d *Document) ChildrenByTag(h Handle, tags ...Tag) []Handle {
	if !d.Valid(h) {
		return nil
	}
	var result []Handle
	for _, c := range d.nodes[h].children {
		if slices.Contains(tags, d.nodes[c].tag) {
			result = append(result, c)
		}
	}
	return result
}

// FirstChild returns the first direct child of h with the given tag.
func (d *Document) FirstChild(h Handle, tag Tag) Handle {
	if !d.Valid(h) {
		return NoHandle
	}
	for _, c := range d.nodes[h].children {
		if d.nodes[c].tag == tag {
			return c
		}
	}
	return NoHandle
}

// Ancestors returns the ancestors of h ordered from the root down,
// excluding h itself.
func (d *Document) Ancestors(h Handle) []Handle {
	var chain []Handle
	for p := d.Parent(h); p != NoHandle; p = d.Parent(p) {
		chain = append(chain, p)
	}
	slices.Reverse(chain)
	return chain
}

// IsAncestor reports whether a is a strict ancestor of h.
func (d *Document) IsAncestor(a, h Handle) bool {
	for p := d.Parent(h); p != NoHandle; p = d.Parent(p) {
		if p == a {
			return true
		}
	}
	return false
}

// Catalogue returns the DataTypeTemplates section, or NoHandle.
func (d *Document) Catalogue() Handle {
	return d.FirstChild(d.root, TagDataTypeTemplates)
}

// Clone returns a deep copy of the arena. Handles remain valid in the copy.
func (d *Document) Clone() *Document {
	c := &Document{
		nodes: make([]node, len(d.nodes)),
		root:  d.root,
	}
	for i, n := range d.nodes {
		n.attrs = slices.Clone(n.attrs)
		n.children = slices.Clone(n.children)
		c.nodes[i] = n
	}
	return c
}

// SetRoot creates the root element. It replaces any previous root reference
// but keeps the old nodes in the arena.
func (d *Document) SetRoot(name string, attrs ...Attr) Handle {
	h := d.alloc(name, attrs, NoHandle)
	d.root = h
	return h
}

// AppendChild creates a new element as the last child of parent.
func (d *Document) AppendChild(parent Handle, name string, attrs ...Attr) Handle {
	return d.InsertBefore(parent, NoHandle, name, attrs...)
}

// InsertBefore creates a new element under parent immediately before ref.
// A ref of NoHandle, or one that is not a child of parent, appends.
func (d *Document) InsertBefore(parent, ref Handle, name string, attrs ...Attr) Handle {
	if !d.Valid(parent) {
		return NoHandle
	}
	h := d.alloc(name, attrs, parent)
	p := &d.nodes[parent]
	idx := slices.Index(p.children, ref)
	if ref == NoHandle || idx < 0 {
		p.children = append(p.children, h)
	} else {
		p.children = slices.Insert(p.children, idx, h)
	}
	return h
}

// SetText sets the character data of h.
func (d *Document) SetText(h Handle, text string) {
	if d.Valid(h) {
		d.nodes[h].text = text
	}
}

func (d *Document) alloc(name string, attrs []Attr, parent Handle) Handle {
	h := Handle(len(d.nodes))
	d.nodes = append(d.nodes, node{
		tag:    ParseTag(localName(name)),
		name:   name,
		attrs:  slices.Clone(attrs),
		parent: parent,
	})
	return h
}

func localName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}
