package synth

import (
	"fmt"
	"slices"
	"strings"

	"github.com/scl-tools/iedit-go/pkg/edit"
	"github.com/scl-tools/iedit-go/pkg/naming"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

// AccessPointRequest describes a new access point.
type AccessPointRequest struct {
	Name string
	Desc string

	// ServerAt, when set, names an access point of the same device that owns
	// a Server. A ServerAt element referencing it is nested in the new
	// access point.
	ServerAt     string
	ServerAtDesc string
}

// ServerAtCandidates lists the access points of device that can be named by
// a ServerAt reference. An empty result means the option is not offered.
func (s *Synthesizer) ServerAtCandidates(device scl.Handle) []string {
	if s.doc.Tag(device) != scl.TagIED {
		return nil
	}
	return s.doc.AccessPointsWithServer(device)
}

// AccessPoint builds the insert of a new access point under device.
func (s *Synthesizer) AccessPoint(device scl.Handle, req AccessPointRequest) (edit.Batch, error) {
	if s.doc.Tag(device) != scl.TagIED {
		return nil, fmt.Errorf("%w: access point parent is %s", ErrWrongParent, s.doc.Tag(device))
	}
	if err := validate("access point name", req.Name, naming.AccessPointRule, s.doc.AccessPointNames(device)); err != nil {
		return nil, err
	}

	ap := scl.NewElement("AccessPoint", "name", strings.TrimSpace(req.Name), "desc", req.Desc)
	batch := edit.Batch{{Parent: edit.Existing(device), Node: ap, Reference: edit.None}}

	if req.ServerAt != "" {
		if !slices.Contains(s.ServerAtCandidates(device), req.ServerAt) {
			return nil, fmt.Errorf("%w: %q", ErrServerAtTarget, req.ServerAt)
		}
		batch = append(batch, edit.Insert{
			Parent:    edit.Pending(ap),
			Node:      scl.NewElement("ServerAt", "apName", req.ServerAt, "desc", req.ServerAtDesc),
			Reference: edit.None,
		})
	}
	return batch, nil
}
