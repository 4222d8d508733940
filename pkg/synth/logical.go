package synth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scl-tools/iedit-go/pkg/edit"
	"github.com/scl-tools/iedit-go/pkg/naming"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// MaxLNInst is the highest instance number handed out to logical nodes.
const MaxLNInst = 99

// LogicalDevice builds a logical device with its root logical node under
// server. The root node references the canonical root type, created in the
// same batch when missing.
func (s *Synthesizer) LogicalDevice(server scl.Handle, inst string) (edit.Batch, error) {
	if s.doc.Tag(server) != scl.TagServer {
		return nil, fmt.Errorf("%w: logical device parent is %s", ErrWrongParent, s.doc.Tag(server))
	}
	if err := validate("logical device inst", inst, naming.LDeviceRule, s.doc.LDeviceInsts(server)); err != nil {
		return nil, err
	}

	typeID, typeInserts, err := s.rootType()
	if err != nil {
		return nil, err
	}
	batch := edit.Batch{{
		Parent:    edit.Existing(server),
		Node:      logicalDevice(strings.TrimSpace(inst), typeID),
		Reference: edit.None,
	}}
	return append(batch, typeInserts...), nil
}

// LogicalNodeRequest describes a batch of logical nodes of one class.
type LogicalNodeRequest struct {
	LNClass string
	LNType  string
	Prefix  string
	Amount  int
}

// LogicalNodes builds up to req.Amount logical nodes under ldevice, each
// with the lowest instance number not yet used for the same prefix and
// class. It stops early when all numbers up to MaxLNInst are taken.
func (s *Synthesizer) LogicalNodes(ldevice scl.Handle, req LogicalNodeRequest) (edit.Batch, error) {
	if s.doc.Tag(ldevice) != scl.TagLDevice {
		return nil, fmt.Errorf("%w: logical node parent is %s", ErrWrongParent, s.doc.Tag(ldevice))
	}
	def, ok := s.reg.Find(scl.DefinitionNodeType, req.LNType)
	if !ok {
		return nil, fmt.Errorf("%w: node type %q", ErrUnknownType, req.LNType)
	}
	lnClass := req.LNClass
	if lnClass == "" {
		lnClass = s.doc.Get(def, "lnClass")
	}

	next := s.instGenerator(ldevice, req.Prefix, lnClass)
	var batch edit.Batch
	for range req.Amount {
		inst, ok := next()
		if !ok {
			break
		}
		batch = append(batch, edit.Insert{
			Parent: edit.Existing(ldevice),
			Node: scl.NewElement("LN",
				"prefix", req.Prefix,
				"lnClass", lnClass,
				"inst", inst,
				"lnType", req.LNType,
			),
			Reference: edit.None,
		})
	}
	return batch, nil
}

// instGenerator returns a function yielding free instance numbers in
// ascending order.
func (s *Synthesizer) instGenerator(ldevice scl.Handle, prefix, lnClass string) func() (string, bool) {
	used := make(map[int]bool)
	for _, ln := range s.doc.ChildrenByTag(ldevice, scl.TagLN) {
		if s.doc.Get(ln, "prefix") != prefix || s.doc.Get(ln, "lnClass") != lnClass {
			continue
		}
		if n, err := strconv.Atoi(s.doc.Get(ln, "inst")); err == nil {
			used[n] = true
		}
	}
	n := 0
	return func() (string, bool) {
		for n < MaxLNInst {
			n++
			if !used[n] {
				used[n] = true
				return strconv.Itoa(n), true
			}
		}
		return "", false
	}
}
