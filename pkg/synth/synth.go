// Package synth builds the insert batches that create new devices, access
// points, logical devices and logical nodes.
//
// Operations read one document snapshot and return an edit.Batch; they never
// modify the snapshot. A batch that creates the canonical root node type is
// only correct against the snapshot it was computed from: after the host
// applies it, later operations must run against the new snapshot so that
// FindCanonicalRootType sees the type and reuses it.
package synth

import (
	"fmt"

	"github.com/scl-tools/iedit-go/pkg/edit"
	"github.com/scl-tools/iedit-go/pkg/registry"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// Defaults used by the device skeleton.
const (
	DefaultManufacturer  = "OpenSCD"
	DefaultAccessPoint   = "AP1"
	DefaultLogicalDevice = "LD1"
	RootTemplate         = "lln0"
)

// Options configures a Synthesizer.
type Options struct {
	Manufacturer string
	IDs          IDSource
	Template     *TypeTemplate // nil loads RootTemplate
}

// Synthesizer computes insert batches against one snapshot.
type Synthesizer struct {
	doc  *scl.Document
	reg  *registry.Registry
	opts Options
}

// New creates a synthesizer over the snapshot indexed by reg.
func New(reg *registry.Registry, opts Options) *Synthesizer {
	if opts.Manufacturer == "" {
		opts.Manufacturer = DefaultManufacturer
	}
	if opts.IDs == nil {
		opts.IDs = UUIDSource{}
	}
	return &Synthesizer{doc: reg.Document(), reg: reg, opts: opts}
}

// ForDocument indexes doc and creates a synthesizer over it.
func ForDocument(doc *scl.Document, opts Options) *Synthesizer {
	return New(registry.New(doc), opts)
}

// FindCanonicalRootType returns the id of the canonical root node type of
// doc, if one exists.
func FindCanonicalRootType(doc *scl.Document) (string, bool) {
	return canonicalRootType(registry.New(doc))
}

func canonicalRootType(reg *registry.Registry) (string, bool) {
	h, ok := reg.CanonicalRootType()
	if !ok {
		return "", false
	}
	return reg.Document().Get(h, "id"), true
}

// FindCanonicalRootType is the snapshot-bound form of the package function.
func (s *Synthesizer) FindCanonicalRootType() (string, bool) {
	return canonicalRootType(s.reg)
}

// VirtualDevice builds a device named name with one access point, server,
// logical device and root logical node. The root node references the
// canonical root type, which is created alongside the device when the
// catalogue has none. The caller validates name (see naming.DeviceRule).
func (s *Synthesizer) VirtualDevice(name string) (edit.Batch, error) {
	root := s.doc.Root()
	if s.doc.Tag(root) != scl.TagSCL {
		return nil, fmt.Errorf("%w: document root is %s", ErrWrongParent, s.doc.Tag(root))
	}

	var batch edit.Batch
	typeID, typeInserts, err := s.rootType()
	if err != nil {
		return nil, err
	}

	ied := scl.NewElement("IED", "name", name, "manufacturer", s.opts.Manufacturer).Append(
		scl.NewElement("AccessPoint", "name", DefaultAccessPoint).Append(
			scl.NewElement("Server").Append(
				scl.NewElement("Authentication"),
				logicalDevice(DefaultLogicalDevice, typeID),
			),
		),
	)
	batch = append(batch, edit.Insert{
		Parent:    edit.Existing(root),
		Node:      ied,
		Reference: edit.Existing(s.reg.Catalogue()),
	})
	return append(batch, typeInserts...), nil
}

func logicalDevice(inst, rootTypeID string) *scl.Element {
	ln0 := scl.NewElement("LN0", "lnClass", registry.RootNodeClass, "lnType", rootTypeID)
	ln0.SetAttr("inst", "")
	return scl.NewElement("LDevice", "inst", inst).Append(ln0)
}

// rootType returns the canonical root type id and, when it does not exist
// yet, the inserts that create it.
func (s *Synthesizer) rootType() (string, edit.Batch, error) {
	if id, ok := s.FindCanonicalRootType(); ok {
		return id, nil, nil
	}

	tpl := s.opts.Template
	if tpl == nil {
		var err error
		if tpl, err = LoadTemplate(RootTemplate); err != nil {
			return "", nil, err
		}
	}
	rootDef, ok := tpl.root()
	if !ok {
		return "", nil, fmt.Errorf("%w: root %q is not a node type", ErrTemplate, tpl.Root)
	}

	m := &minter{src: s.opts.IDs, taken: s.reg.Has, used: make(map[string]bool)}
	ids := make(map[string]string, len(tpl.Definitions))
	for _, d := range tpl.Definitions {
		id, err := m.mint(d.Kind(), d.Key)
		if err != nil {
			return "", nil, fmt.Errorf("%s %s: %w", d.Element, d.Key, err)
		}
		ids[d.Key] = id
	}

	return ids[rootDef.Key], s.catalogueInserts(tpl.fragments(ids)), nil
}

// catalogueInserts places definition fragments in schema order, creating the
// catalogue section when the document has none.
func (s *Synthesizer) catalogueInserts(defs []*scl.Element) edit.Batch {
	var batch edit.Batch

	cat := s.reg.Catalogue()
	if cat == scl.NoHandle {
		section := scl.NewElement("DataTypeTemplates")
		batch = append(batch, edit.Insert{
			Parent:    edit.Existing(s.doc.Root()),
			Node:      section,
			Reference: edit.None,
		})
		for _, d := range defs {
			batch = append(batch, edit.Insert{Parent: edit.Pending(section), Node: d, Reference: edit.None})
		}
		return batch
	}

	for _, d := range defs {
		batch = append(batch, edit.Insert{
			Parent:    edit.Existing(cat),
			Node:      d,
			Reference: edit.Existing(s.schemaSuccessor(cat, d.Tag().DefinitionKind())),
		})
	}
	return batch
}

// schemaSuccessor returns the first catalogue child whose kind comes after
// kind in schema order, or NoHandle to append.
func (s *Synthesizer) schemaSuccessor(cat scl.Handle, kind scl.DefinitionKind) scl.Handle {
	for _, c := range s.doc.Children(cat) {
		if k := s.doc.Tag(c).DefinitionKind(); k != scl.DefinitionNone && k > kind {
			return c
		}
	}
	return scl.NoHandle
}
