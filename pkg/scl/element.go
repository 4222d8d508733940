package scl

// Element is a detached element fragment. Fragments are built by the
// synthesizer and attached to a document copy with Graft.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement creates a fragment from a name and alternating key/value pairs.
// Pairs with an empty value are skipped, so optional attributes can be passed
// unconditionally.
func NewElement(name string, kv ...string) *Element {
	e := &Element{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		e.Attrs = append(e.Attrs, Attr{Name: kv[i], Value: kv[i+1]})
	}
	return e
}

// Tag returns the element variant of the fragment.
func (e *Element) Tag() Tag {
	return ParseTag(localName(e.Name))
}

// Attr returns the value of an attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute even when the value is empty.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Append adds children and returns the receiver for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Walk calls fn for e and every descendant in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Count returns the number of elements in the fragment that carry tag.
func (e *Element) Count(tag Tag) int {
	n := 0
	e.Walk(func(x *Element) {
		if x.Tag() == tag {
			n++
		}
	})
	return n
}

// Find returns the first element of the fragment with the given tag.
func (e *Element) Find(tag Tag) *Element {
	var found *Element
	e.Walk(func(x *Element) {
		if found == nil && x.Tag() == tag {
			found = x
		}
	})
	return found
}

// Graft attaches a copy of fragment under parent immediately before ref
// (appending when ref is NoHandle). It returns the handle of every grafted
// fragment element so later operations can address pending nodes.
func (d *Document) Graft(parent, ref Handle, fragment *Element) map[*Element]Handle {
	handles := make(map[*Element]Handle)
	d.graft(parent, ref, fragment, handles)
	return handles
}

func (d *Document) graft(parent, ref Handle, e *Element, handles map[*Element]Handle) {
	h := d.InsertBefore(parent, ref, e.Name, e.Attrs...)
	if h == NoHandle {
		return
	}
	d.SetText(h, e.Text)
	handles[e] = h
	for _, c := range e.Children {
		d.graft(h, NoHandle, c, handles)
	}
}
