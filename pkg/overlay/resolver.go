package overlay

import (
	"github.com/scl-tools/iedit-go/pkg/registry"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// StructBType marks a data attribute whose type is a composite AttributeType.
const StructBType = "Struct"

// EnumBType marks a data attribute whose type is an EnumType.
const EnumBType = "Enum"

type memberClass struct {
	member    scl.MemberKind
	composite bool
}

type memberRule struct {
	override scl.Tag
	sub      scl.DefinitionKind
}

// memberRules is the single mapping from a definition member to the
// override element that instantiates it and the definition it expands.
var memberRules = map[memberClass]memberRule{
	{scl.MemberDataObject, true}:          {override: scl.TagDOI, sub: scl.DefinitionObjectType},
	{scl.MemberSubDataObject, true}:       {override: scl.TagSDI, sub: scl.DefinitionObjectType},
	{scl.MemberDataAttribute, true}:       {override: scl.TagSDI, sub: scl.DefinitionAttributeType},
	{scl.MemberDataAttribute, false}:      {override: scl.TagDAI},
	{scl.MemberBasicDataAttribute, true}:  {override: scl.TagSDI, sub: scl.DefinitionAttributeType},
	{scl.MemberBasicDataAttribute, false}: {override: scl.TagDAI},
}

// classify returns the member class of a definition child. Data objects are
// always composite; attributes are composite only for the struct bType.
func classify(doc *scl.Document, member scl.Handle) (memberClass, bool) {
	kind := doc.Tag(member).MemberKind()
	switch kind {
	case scl.MemberDataObject, scl.MemberSubDataObject:
		return memberClass{kind, true}, true
	case scl.MemberDataAttribute, scl.MemberBasicDataAttribute:
		return memberClass{kind, doc.Get(member, "bType") == StructBType}, true
	default:
		return memberClass{}, false
	}
}

// OverrideTag returns the override element expected for a definition member
// and whether the member is composite. Non-member handles return TagUnknown.
func OverrideTag(doc *scl.Document, member scl.Handle) (scl.Tag, bool) {
	class, ok := classify(doc, member)
	if !ok {
		return scl.TagUnknown, false
	}
	return memberRules[class].override, class.composite
}

type overrideKey struct {
	tag  scl.Tag
	name string
}

// Resolver pairs definition members with instance overrides for one document
// snapshot. It caches per-parent override indexes and is not safe for
// concurrent use.
type Resolver struct {
	doc       *scl.Document
	reg       *registry.Registry
	overrides map[scl.Handle]map[overrideKey]scl.Handle
}

// New creates a resolver over the snapshot indexed by reg.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{
		doc:       reg.Document(),
		reg:       reg,
		overrides: make(map[scl.Handle]map[overrideKey]scl.Handle),
	}
}

// ForDocument indexes doc and creates a resolver over it.
func ForDocument(doc *scl.Document) *Resolver {
	return New(registry.New(doc))
}

// Document returns the snapshot being resolved.
func (r *Resolver) Document() *scl.Document {
	return r.doc
}

// Registry returns the definition index used by the resolver.
func (r *Resolver) Registry() *registry.Registry {
	return r.reg
}

// NodeType returns the NodeType governing a logical node.
func (r *Resolver) NodeType(ln scl.Handle) (scl.Handle, bool) {
	if !r.doc.Tag(ln).IsLogicalNode() {
		return scl.NoHandle, false
	}
	return r.reg.Find(scl.DefinitionNodeType, r.doc.Get(ln, "lnType"))
}

// Children returns the data objects of a logical node paired with their
// DOI overrides, in the declaration order of the node type.
func (r *Resolver) Children(ln scl.Handle) []Entry {
	def, ok := r.NodeType(ln)
	if !ok {
		return nil
	}
	return r.members(def, ln)
}

// Expand returns the members of a composite entry's sub-definition paired
// with overrides found directly under the entry's override. Terminal entries
// and entries whose type does not resolve have no children.
func (r *Resolver) Expand(e Entry) []Entry {
	def, ok := r.definitionOf(e)
	if !ok {
		return nil
	}
	return r.members(def, e.Override)
}

func (r *Resolver) definitionOf(e Entry) (scl.Handle, bool) {
	if !e.Composite {
		return scl.NoHandle, false
	}
	class, ok := classify(r.doc, e.Definition)
	if !ok {
		return scl.NoHandle, false
	}
	return r.reg.Find(memberRules[class].sub, e.Type)
}

func (r *Resolver) members(def, instance scl.Handle) []Entry {
	var entries []Entry
	for _, m := range r.doc.Children(def) {
		class, ok := classify(r.doc, m)
		if !ok {
			continue
		}
		rule := memberRules[class]
		name := r.doc.Get(m, "name")
		e := Entry{
			Definition:  m,
			Name:        name,
			Member:      class.member,
			OverrideTag: rule.override,
			Composite:   class.composite,
			Type:        r.doc.Get(m, "type"),
			BType:       r.doc.Get(m, "bType"),
			FC:          r.doc.Get(m, "fc"),
			Desc:        r.doc.Get(m, "desc"),
			Override:    r.override(instance, rule.override, name),
		}
		if !e.Composite {
			r.fillTerminal(&e)
		}
		entries = append(entries, e)
	}
	return entries
}

// override returns the first direct child of parent with the given tag and
// name. Matching is exact and case-sensitive.
func (r *Resolver) override(parent scl.Handle, tag scl.Tag, name string) scl.Handle {
	if parent == scl.NoHandle || name == "" {
		return scl.NoHandle
	}
	index, ok := r.overrides[parent]
	if !ok {
		index = make(map[overrideKey]scl.Handle)
		for _, c := range r.doc.ChildrenByTag(parent, scl.TagDOI, scl.TagSDI, scl.TagDAI) {
			k := overrideKey{tag: r.doc.Tag(c), name: r.doc.Get(c, "name")}
			if _, dup := index[k]; !dup {
				index[k] = c
			}
		}
		r.overrides[parent] = index
	}
	if h, ok := index[overrideKey{tag: tag, name: name}]; ok {
		return h
	}
	return scl.NoHandle
}

func (r *Resolver) fillTerminal(e *Entry) {
	e.Values = values(r.doc, e.Override)
	e.Defaults = values(r.doc, e.Definition)
	if e.BType == EnumBType {
		e.EnumValues = r.EnumValues(e.Type)
	}
}

// EnumValues returns the literals of an EnumType in declaration order.
func (r *Resolver) EnumValues(id string) []string {
	def, ok := r.reg.Find(scl.DefinitionEnumType, id)
	if !ok {
		return nil
	}
	var literals []string
	for _, v := range r.doc.ChildrenByTag(def, scl.TagEnumVal) {
		literals = append(literals, r.doc.Text(v))
	}
	return literals
}
