package edit

import (
	"errors"
	"testing"

	"github.com/scl-tools/iedit-go/internal/scltest"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

func TestApplyOrderAndReference(t *testing.T) {
	doc := scltest.Sample(t)
	root := doc.Root()
	cat := doc.Catalogue()

	ied := scl.NewElement("IED", "name", "NEW")
	ap := scl.NewElement("AccessPoint", "name", "AP1")
	batch := Batch{
		{Parent: Existing(root), Node: ied, Reference: Existing(cat)},
		{Parent: Pending(ied), Node: ap, Reference: None},
		{Parent: Pending(ap), Node: scl.NewElement("Server"), Reference: None},
	}

	next, err := Apply(doc, batch)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	children := next.Children(next.Root())
	last := children[len(children)-1]
	if next.Tag(last) != scl.TagDataTypeTemplates {
		t.Errorf("catalogue should stay last, got %v", next.Tag(last))
	}
	h := next.DeviceByName("NEW")
	if h == scl.NoHandle {
		t.Fatal("new device not found")
	}
	if got := next.AccessPointsWithServer(h); len(got) != 1 || got[0] != "AP1" {
		t.Errorf("AccessPointsWithServer() = %v", got)
	}

	if doc.DeviceByName("NEW") != scl.NoHandle {
		t.Error("original snapshot was mutated")
	}
}

func TestApplyIsAllOrNothing(t *testing.T) {
	doc := scltest.Sample(t)
	ied := doc.DeviceByName("IED1")
	orphan := scl.NewElement("AccessPoint", "name", "X")

	tests := []struct {
		name  string
		batch Batch
		err   error
	}{
		{
			"UnknownParent",
			Batch{{Parent: Existing(9999), Node: scl.NewElement("IED")}},
			ErrUnknownParent,
		},
		{
			"ReferenceNotChild",
			Batch{
				{Parent: Existing(ied), Node: scl.NewElement("AccessPoint", "name", "AP9"), Reference: None},
				{Parent: Existing(ied), Node: scl.NewElement("AccessPoint", "name", "APX"), Reference: Existing(doc.Catalogue())},
			},
			ErrReferenceNotChild,
		},
		{
			"PendingBeforeInsert",
			Batch{{Parent: Pending(orphan), Node: scl.NewElement("Server")}},
			ErrPendingNotInserted,
		},
		{
			"NilNode",
			Batch{{Parent: Existing(ied)}},
			ErrEmptyNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(doc, tt.batch)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.err)
			}
			if got != doc {
				t.Error("failed Apply should return the original snapshot")
			}
			if n := len(doc.AccessPointNames(ied)); n != 2 {
				t.Errorf("original has %d access points, want 2", n)
			}
		})
	}
}

func TestBatchSummary(t *testing.T) {
	ied := scl.NewElement("IED", "name", "A").Append(
		scl.NewElement("AccessPoint", "name", "AP1").Append(scl.NewElement("Server")),
	)
	batch := Batch{
		{Parent: Existing(0), Node: ied},
		{Parent: Existing(1), Node: scl.NewElement("LNodeType", "id", "T")},
	}

	if got := batch.Summary(); got != "IED,LNodeType" {
		t.Errorf("Summary() = %q", got)
	}
	if got := batch.Count(scl.TagServer); got != 1 {
		t.Errorf("Count(Server) = %d, want 1", got)
	}
	if got := len(batch.Nodes(scl.TagLNodeType)); got != 1 {
		t.Errorf("Nodes(LNodeType) = %d, want 1", got)
	}
}

func TestRef(t *testing.T) {
	if !None.IsNone() {
		t.Error("None should be none")
	}
	if Existing(3).IsNone() || Existing(3).Handle() != 3 {
		t.Error("Existing(3) mismatch")
	}
	e := scl.NewElement("Server")
	p := Pending(e)
	if p.IsNone() || p.Element() != e || p.Handle() != scl.NoHandle {
		t.Error("Pending mismatch")
	}
	if p.String() != "pending:Server" || None.String() != "none" {
		t.Errorf("String() = %q / %q", p.String(), None.String())
	}
}
