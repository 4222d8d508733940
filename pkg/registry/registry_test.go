package registry

import (
	"testing"

	"github.com/scl-tools/iedit-go/internal/scltest"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

func TestFind(t *testing.T) {
	doc := scltest.Sample(t)
	r := New(doc)

	tests := []struct {
		name  string
		kind  scl.DefinitionKind
		id    string
		found bool
	}{
		{"NodeType", scl.DefinitionNodeType, "XCBR_T", true},
		{"ObjectType", scl.DefinitionObjectType, "DPC_Pos", true},
		{"AttributeType", scl.DefinitionAttributeType, "Originator", true},
		{"EnumType", scl.DefinitionEnumType, "OrCat", true},
		{"WrongKind", scl.DefinitionAttributeType, "DPC_Pos", false},
		{"CaseSensitive", scl.DefinitionNodeType, "xcbr_t", false},
		{"Missing", scl.DefinitionNodeType, "Nope", false},
		{"Empty", scl.DefinitionNodeType, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := r.Find(tt.kind, tt.id)
			if ok != tt.found {
				t.Fatalf("Find(%v, %q) found = %v, want %v", tt.kind, tt.id, ok, tt.found)
			}
			if ok && doc.Get(h, "id") != tt.id {
				t.Errorf("id = %q, want %q", doc.Get(h, "id"), tt.id)
			}
			if !ok && h != scl.NoHandle {
				t.Errorf("absent lookup returned handle %d", h)
			}
		})
	}
}

func TestDuplicateIDIsAbsent(t *testing.T) {
	doc := scltest.Parse(t, `<SCL><DataTypeTemplates>
		<DOType id="Dup" cdc="SPS"/>
		<DOType id="Dup" cdc="DPS"/>
		<DAType id="Dup"/>
	</DataTypeTemplates></SCL>`)
	r := New(doc)

	if _, ok := r.Find(scl.DefinitionObjectType, "Dup"); ok {
		t.Error("duplicate DOType id should resolve to nothing")
	}
	if !r.Has(scl.DefinitionObjectType, "Dup") {
		t.Error("Has() should report the id as taken")
	}
	if _, ok := r.Find(scl.DefinitionAttributeType, "Dup"); !ok {
		t.Error("same id under another kind should still resolve")
	}
}

func TestOfKindOrder(t *testing.T) {
	doc := scltest.Sample(t)

	ids := New(doc).IDs(scl.DefinitionEnumType)
	want := []string{"BehaviourModeKind", "CtlModelKind", "OrCat"}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if n := len(FindDefinitionsOfKind(doc, scl.DefinitionObjectType)); n != 2 {
		t.Errorf("ObjectType count = %d, want 2", n)
	}
}

func TestCanonicalRootType(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		doc := scltest.Sample(t)
		h, ok := New(doc).CanonicalRootType()
		if !ok || doc.Get(h, "id") != "LLN0_T" {
			t.Errorf("CanonicalRootType() = %d, %v", h, ok)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		doc := scltest.Parse(t, `<SCL><DataTypeTemplates>
			<LNodeType id="X" lnClass="XCBR"/>
			<LNodeType lnClass="LLN0"/>
		</DataTypeTemplates></SCL>`)
		if _, ok := New(doc).CanonicalRootType(); ok {
			t.Error("expected no canonical root type")
		}
	})

	t.Run("NoCatalogue", func(t *testing.T) {
		doc := scl.NewSCLDocument()
		r := New(doc)
		if r.Catalogue() != scl.NoHandle {
			t.Error("expected no catalogue")
		}
		if _, ok := r.CanonicalRootType(); ok {
			t.Error("expected no canonical root type")
		}
		if _, ok := FindDefinition(doc, scl.DefinitionNodeType, "X"); ok {
			t.Error("expected absent")
		}
	})
}
