package inspect

import (
	"errors"
	"fmt"
	"slices"

	"github.com/scl-tools/iedit-go/pkg/naming"
	"github.com/scl-tools/iedit-go/pkg/overlay"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// Inspector errors.
var (
	ErrDeviceNotFound        = errors.New("device not found")
	ErrAccessPointNotFound   = errors.New("access point not found")
	ErrLogicalDeviceNotFound = errors.New("logical device not found")
	ErrLogicalNodeNotFound   = errors.New("logical node not found")
	ErrDataNotFound          = errors.New("data not found")
)

// Inspector locates and describes nodes of one document snapshot.
type Inspector struct {
	doc *scl.Document
	res *overlay.Resolver
}

// NewInspector creates a new Inspector for the given document.
func NewInspector(doc *scl.Document) *Inspector {
	return &Inspector{doc: doc, res: overlay.ForDocument(doc)}
}

// Document returns the underlying document.
func (i *Inspector) Document() *scl.Document {
	return i.doc
}

// Resolver returns the overlay resolver bound to the document.
func (i *Inspector) Resolver() *overlay.Resolver {
	return i.res
}

// Target is the result of locating a path.
type Target struct {
	// Node is the deepest instance node named by the path.
	Node scl.Handle

	// Entry is the resolved member for data paths.
	Entry *overlay.Entry
}

// Locate resolves a path against the document.
func (i *Inspector) Locate(p *Path) (Target, error) {
	dev := i.doc.DeviceByName(p.Device)
	if dev == scl.NoHandle {
		return Target{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, p.Device)
	}
	if p.AccessPoint == "" {
		return Target{Node: dev}, nil
	}

	ap := i.doc.AccessPointByName(dev, p.AccessPoint)
	if ap == scl.NoHandle {
		return Target{}, fmt.Errorf("%w: %s", ErrAccessPointNotFound, p.AccessPoint)
	}
	if p.LDevice == "" {
		return Target{Node: ap}, nil
	}

	ld := i.doc.LDeviceByInst(i.doc.FirstChild(ap, scl.TagServer), p.LDevice)
	if ld == scl.NoHandle {
		return Target{}, fmt.Errorf("%w: %s", ErrLogicalDeviceNotFound, p.LDevice)
	}
	if p.LN == "" {
		return Target{Node: ld}, nil
	}

	ln := scl.NoHandle
	for _, h := range i.doc.LogicalNodes(ld) {
		if LNName(i.doc, h) == p.LN {
			ln = h
			break
		}
	}
	if ln == scl.NoHandle {
		return Target{}, fmt.Errorf("%w: %s", ErrLogicalNodeNotFound, p.LN)
	}
	if !p.IsData() {
		return Target{Node: ln}, nil
	}

	e, ok := i.res.Lookup(ln, p.Data...)
	if !ok {
		return Target{}, fmt.Errorf("%w: %s", ErrDataNotFound, p.String())
	}
	return Target{Node: ln, Entry: &e}, nil
}

// Titles returns the focus path titles for a located target. Data targets
// extend the logical node's path with the member names.
func (i *Inspector) Titles(p *Path, t Target) []string {
	titles := naming.Path(i.doc, t.Node)
	if t.Entry != nil {
		titles = append(titles, p.Data...)
	}
	return titles
}

// TreeOptions controls which parts of the instance tree are built.
type TreeOptions struct {
	// Devices restricts the tree to the named devices. Empty means all.
	Devices []string

	// IncludeLN, when set, keeps only matching logical nodes. Logical
	// devices left without a logical node are dropped.
	IncludeLN func(ln scl.Handle) bool

	// Overlay adds the resolved data entries below every logical node.
	Overlay bool
}

// TreeNode is one node of the printable tree.
type TreeNode struct {
	Title    string      `yaml:"title"`
	Kind     string      `yaml:"kind"`
	Type     string      `yaml:"type,omitempty"`
	BType    string      `yaml:"bType,omitempty"`
	FC       string      `yaml:"fc,omitempty"`
	Desc     string      `yaml:"desc,omitempty"`
	Values   []string    `yaml:"values,omitempty"`
	Defaults []string    `yaml:"defaults,omitempty"`
	Enum     []string    `yaml:"enum,omitempty"`
	Missing  bool        `yaml:"missing,omitempty"`
	Children []*TreeNode `yaml:"children,omitempty"`
}

// Tree builds the instance tree of the document.
func (i *Inspector) Tree(opts TreeOptions) []*TreeNode {
	var out []*TreeNode
	for _, dev := range i.doc.Devices() {
		if len(opts.Devices) > 0 && !slices.Contains(opts.Devices, i.doc.Get(dev, "name")) {
			continue
		}
		out = append(out, i.instanceNode(dev, opts))
	}
	return out
}

func (i *Inspector) instanceNode(h scl.Handle, opts TreeOptions) *TreeNode {
	kind := i.doc.Tag(h).InstanceKind()
	n := &TreeNode{Title: naming.Title(i.doc, h), Kind: kind.String(), Desc: i.doc.Get(h, "desc")}

	switch kind {
	case scl.InstanceServerAt:
		n.Title = "ServerAt " + i.doc.Get(h, "apName")
	case scl.InstanceRootLogicalNode, scl.InstanceLogicalNode:
		n.Title = LNName(i.doc, h)
		n.Type = i.doc.Get(h, "lnType")
		if opts.Overlay {
			for _, d := range i.res.Resolve(h) {
				n.Children = append(n.Children, dataNode(d))
			}
		}
		return n
	}

	for _, c := range i.doc.Children(h) {
		ck := i.doc.Tag(c).InstanceKind()
		if ck == scl.InstanceNone {
			continue
		}
		if (ck == scl.InstanceRootLogicalNode || ck == scl.InstanceLogicalNode) && opts.IncludeLN != nil && !opts.IncludeLN(c) {
			continue
		}
		child := i.instanceNode(c, opts)
		if ck == scl.InstanceLogicalDevice && opts.IncludeLN != nil && len(child.Children) == 0 {
			continue
		}
		n.Children = append(n.Children, child)
	}
	return n
}

func dataNode(d overlay.Node) *TreeNode {
	n := &TreeNode{
		Title:   d.Name,
		Kind:    d.Member.String(),
		Type:    d.Type,
		BType:   d.BType,
		FC:      d.FC,
		Desc:    d.Desc,
		Enum:    d.EnumValues,
		Missing: !d.Instantiated(),
	}
	for _, v := range d.Values {
		n.Values = append(n.Values, v.Display())
	}
	for _, v := range d.Defaults {
		n.Defaults = append(n.Defaults, v.Display())
	}
	for _, c := range d.Children {
		n.Children = append(n.Children, dataNode(c))
	}
	return n
}

// TypeInfo describes one catalogue definition.
type TypeInfo struct {
	ID      string   `yaml:"id"`
	Kind    string   `yaml:"kind"`
	Class   string   `yaml:"class,omitempty"`
	Members []string `yaml:"members,omitempty"`
}

// Types lists the catalogue definitions of a kind, or of every kind when
// kind is DefinitionNone.
func (i *Inspector) Types(kind scl.DefinitionKind) []TypeInfo {
	reg := i.res.Registry()
	kinds := []scl.DefinitionKind{kind}
	if kind == scl.DefinitionNone {
		kinds = []scl.DefinitionKind{
			scl.DefinitionNodeType,
			scl.DefinitionObjectType,
			scl.DefinitionAttributeType,
			scl.DefinitionEnumType,
		}
	}

	var out []TypeInfo
	for _, k := range kinds {
		for _, def := range reg.OfKind(k) {
			info := TypeInfo{
				ID:    i.doc.Get(def, "id"),
				Kind:  k.String(),
				Class: i.doc.Get(def, "lnClass") + i.doc.Get(def, "cdc"),
			}
			for _, m := range i.doc.Children(def) {
				if i.doc.Tag(m) == scl.TagEnumVal {
					info.Members = append(info.Members, i.doc.Get(m, "ord")+" "+i.doc.Text(m))
					continue
				}
				if name := i.doc.Get(m, "name"); name != "" {
					info.Members = append(info.Members, name)
				}
			}
			out = append(out, info)
		}
	}
	return out
}
