package overlay

import (
	"strconv"

	"github.com/scl-tools/iedit-go/pkg/scl"
)

// Entry pairs one definition member with its override, if present.
type Entry struct {
	Definition  scl.Handle // DO, SDO, DA or BDA element
	Name        string
	Member      scl.MemberKind
	OverrideTag scl.Tag    // DOI, SDI or DAI
	Override    scl.Handle // NoHandle when not instantiated
	Composite   bool

	Type  string
	BType string
	FC    string
	Desc  string

	// Terminal members only.
	Values     []Value
	Defaults   []Value
	EnumValues []string
}

// Instantiated reports whether an override element exists for the member.
func (e Entry) Instantiated() bool {
	return e.Override != scl.NoHandle
}

// Uninitialized reports whether a terminal member has no concrete value.
func (e Entry) Uninitialized() bool {
	return !e.Composite && len(e.Values) == 0
}

// Value is one concrete value of a terminal member. Values qualified with a
// setting group are listed next to the unqualified one, never merged.
type Value struct {
	Handle   scl.Handle
	Text     string
	SGroup   int
	HasGroup bool
}

// Display renders the value as shown to the user.
func (v Value) Display() string {
	if v.HasGroup {
		return "SG" + strconv.Itoa(v.SGroup) + ": " + v.Text
	}
	return v.Text
}

func values(doc *scl.Document, h scl.Handle) []Value {
	var vals []Value
	for _, v := range doc.ChildrenByTag(h, scl.TagVal) {
		val := Value{Handle: v, Text: doc.Text(v)}
		if sg, ok := doc.Attr(v, "sGroup"); ok {
			if n, err := strconv.Atoi(sg); err == nil {
				val.SGroup = n
				val.HasGroup = true
			}
		}
		vals = append(vals, val)
	}
	return vals
}

// Node is an entry with its resolved children.
type Node struct {
	Entry
	Children []Node
}

type typeKey struct {
	kind scl.DefinitionKind
	id   string
}

// Resolve builds the complete overlay of a logical node. Recursion stops at
// a type that already occurs on the current path.
func (r *Resolver) Resolve(ln scl.Handle) []Node {
	def, ok := r.NodeType(ln)
	if !ok {
		return nil
	}
	path := map[typeKey]bool{
		{scl.DefinitionNodeType, r.doc.Get(def, "id")}: true,
	}
	return r.resolve(r.members(def, ln), path)
}

func (r *Resolver) resolve(entries []Entry, path map[typeKey]bool) []Node {
	nodes := make([]Node, 0, len(entries))
	for _, e := range entries {
		n := Node{Entry: e}
		if def, ok := r.definitionOf(e); ok {
			k := typeKey{r.doc.Tag(def).DefinitionKind(), e.Type}
			if !path[k] {
				path[k] = true
				n.Children = r.resolve(r.members(def, e.Override), path)
				delete(path, k)
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// Lookup follows member names from a logical node down the overlay and
// returns the entry at the end of the path.
func (r *Resolver) Lookup(ln scl.Handle, names ...string) (Entry, bool) {
	if len(names) == 0 {
		return Entry{}, false
	}
	entries := r.Children(ln)
	for i, name := range names {
		var found *Entry
		for j := range entries {
			if entries[j].Name == name {
				found = &entries[j]
				break
			}
		}
		if found == nil {
			return Entry{}, false
		}
		if i == len(names)-1 {
			return *found, true
		}
		entries = r.Expand(*found)
	}
	return Entry{}, false
}

// Walk visits every node of a resolved overlay depth first. The depth of a
// top-level node is 0.
func Walk(nodes []Node, fn func(n Node, depth int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int)) {
	for _, n := range nodes {
		fn(n, depth)
		walk(n.Children, depth+1, fn)
	}
}
