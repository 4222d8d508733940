package scl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/scl-tools/iedit-go/internal/scltest"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

func TestTagTable(t *testing.T) {
	tests := []struct {
		name       string
		tag        scl.Tag
		instance   scl.InstanceKind
		definition scl.DefinitionKind
		member     scl.MemberKind
	}{
		{"IED", scl.TagIED, scl.InstanceDevice, scl.DefinitionNone, scl.MemberNone},
		{"LN0", scl.TagLN0, scl.InstanceRootLogicalNode, scl.DefinitionNone, scl.MemberNone},
		{"DAI", scl.TagDAI, scl.InstanceAttribute, scl.DefinitionNone, scl.MemberNone},
		{"LNodeType", scl.TagLNodeType, scl.InstanceNone, scl.DefinitionNodeType, scl.MemberNone},
		{"DAType", scl.TagDAType, scl.InstanceNone, scl.DefinitionAttributeType, scl.MemberNone},
		{"BDA", scl.TagBDA, scl.InstanceNone, scl.DefinitionNone, scl.MemberBasicDataAttribute},
		{"Bogus", scl.TagUnknown, scl.InstanceNone, scl.DefinitionNone, scl.MemberNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := scl.ParseTag(tt.name)
			if tag != tt.tag {
				t.Fatalf("ParseTag(%q) = %v, want %v", tt.name, tag, tt.tag)
			}
			if got := tag.InstanceKind(); got != tt.instance {
				t.Errorf("InstanceKind() = %v, want %v", got, tt.instance)
			}
			if got := tag.DefinitionKind(); got != tt.definition {
				t.Errorf("DefinitionKind() = %v, want %v", got, tt.definition)
			}
			if got := tag.MemberKind(); got != tt.member {
				t.Errorf("MemberKind() = %v, want %v", got, tt.member)
			}
		})
	}
}

func TestDefinitionKindTagRoundTrip(t *testing.T) {
	for _, k := range scl.DefinitionKinds {
		if got := k.Tag().DefinitionKind(); got != k {
			t.Errorf("%v: Tag().DefinitionKind() = %v", k, got)
		}
	}
}

func TestDecodeSample(t *testing.T) {
	doc := scltest.Sample(t)

	if doc.Tag(doc.Root()) != scl.TagSCL {
		t.Fatalf("root tag = %v, want SCL", doc.Tag(doc.Root()))
	}

	t.Run("Devices", func(t *testing.T) {
		names := doc.DeviceNames()
		if len(names) != 2 || names[0] != "IED1" || names[1] != "IED0" {
			t.Errorf("DeviceNames() = %v", names)
		}
	})

	t.Run("Catalogue", func(t *testing.T) {
		cat := doc.Catalogue()
		if cat == scl.NoHandle {
			t.Fatal("no catalogue")
		}
		if n := len(doc.ChildrenByTag(cat, scl.TagLNodeType)); n != 2 {
			t.Errorf("LNodeType count = %d, want 2", n)
		}
	})

	t.Run("ValueText", func(t *testing.T) {
		dai := scltest.MustFind(t, doc, "IED1/AP1/Server/LD1/LLN0/Beh/stVal")
		vals := doc.ChildrenByTag(dai, scl.TagVal)
		if len(vals) != 1 || doc.Text(vals[0]) != "on" {
			t.Errorf("Val text = %q", doc.Text(vals[0]))
		}
	})

	t.Run("PrefixedAttributes", func(t *testing.T) {
		if _, ok := doc.Attr(doc.Root(), "xmlns:xsi"); !ok {
			t.Error("xmlns:xsi attribute lost")
		}
		if _, ok := doc.Attr(doc.Root(), "xmlns"); !ok {
			t.Error("default namespace lost")
		}
	})
}

func TestDecodeIndentedNesting(t *testing.T) {
	input := "<SCL>\n <IED name=\"A\">\n  <AccessPoint name=\"AP1\">\n   <Server>\n    <LDevice inst=\"LD1\">\n" +
		"     <LN0 lnClass=\"LLN0\" inst=\"\" lnType=\"T\">\n      <DOI name=\"Beh\">\n       <DAI name=\"stVal\">\n" +
		"        <Val>\n         on\n        </Val>\n       </DAI>\n      </DOI>\n     </LN0>\n    </LDevice>\n   </Server>\n" +
		"  </AccessPoint>\n  <AccessPoint name=\"AP2\"/>\n </IED>\n</SCL>\n"

	doc, err := scl.Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	ied := doc.DeviceByName("A")
	if ied == scl.NoHandle {
		t.Fatal("device A not found")
	}
	if got := doc.AccessPointNames(ied); len(got) != 2 || got[1] != "AP2" {
		t.Errorf("AccessPointNames() = %v, want [AP1 AP2]", got)
	}
	server := doc.FirstChild(doc.AccessPointByName(ied, "AP1"), scl.TagServer)
	ld := doc.LDeviceByInst(server, "LD1")
	if ld == scl.NoHandle {
		t.Fatal("LD1 not found")
	}

	val := doc.FirstChild(doc.FirstChild(doc.FirstChild(doc.FirstChild(ld, scl.TagLN0), scl.TagDOI), scl.TagDAI), scl.TagVal)
	if got := doc.Text(val); got != "on" {
		t.Errorf("Val text = %q, want %q", got, "on")
	}
	if got := doc.Text(ied); got != "" {
		t.Errorf("IED text = %q, want empty", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Unclosed", "<SCL><IED>"},
		{"TwoRoots", "<SCL/><SCL/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := scl.Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := scltest.Sample(t)

	var buf bytes.Buffer
	if err := scl.Encode(&buf, doc); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	again, err := scl.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() of encoded output error = %v", err)
	}
	if again.Len() != doc.Len() {
		t.Errorf("node count = %d, want %d", again.Len(), doc.Len())
	}

	dai := scltest.MustFind(t, again, "IED1/AP1/Server/LD1/XCBR/Pos/ctlModel")
	vals := again.ChildrenByTag(dai, scl.TagVal)
	if len(vals) != 2 || again.Get(vals[1], "sGroup") != "2" {
		t.Errorf("setting-group values not preserved")
	}
}

func TestAncestors(t *testing.T) {
	doc := scltest.Sample(t)
	ln := scltest.MustFind(t, doc, "IED1/AP1/Server/LD1/XCBR")

	chain := doc.Ancestors(ln)
	want := []scl.Tag{scl.TagSCL, scl.TagIED, scl.TagAccessPoint, scl.TagServer, scl.TagLDevice}
	if len(chain) != len(want) {
		t.Fatalf("len(Ancestors) = %d, want %d", len(chain), len(want))
	}
	for i, h := range chain {
		if doc.Tag(h) != want[i] {
			t.Errorf("ancestor %d = %v, want %v", i, doc.Tag(h), want[i])
		}
	}
	if !doc.IsAncestor(chain[1], ln) {
		t.Error("IsAncestor(IED, LN) = false")
	}
}

func TestInvalidHandles(t *testing.T) {
	doc := scl.NewSCLDocument()

	if doc.Tag(scl.NoHandle) != scl.TagUnknown {
		t.Error("Tag(NoHandle) should be unknown")
	}
	if doc.Children(42) != nil {
		t.Error("Children(invalid) should be nil")
	}
	if doc.Parent(doc.Root()) != scl.NoHandle {
		t.Error("root should have no parent")
	}
	if doc.AppendChild(99, "IED") != scl.NoHandle {
		t.Error("AppendChild under invalid parent should fail")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := scl.NewSCLDocument()
	ied := doc.AppendChild(doc.Root(), "IED", scl.Attr{Name: "name", Value: "A"})

	clone := doc.Clone()
	clone.AppendChild(ied, "AccessPoint", scl.Attr{Name: "name", Value: "AP1"})

	if len(doc.Children(ied)) != 0 {
		t.Error("mutating the clone changed the original")
	}
	if len(clone.Children(ied)) != 1 {
		t.Error("clone did not receive the new child")
	}
}

func TestInsertBefore(t *testing.T) {
	doc := scl.NewSCLDocument()
	root := doc.Root()
	tpl := doc.AppendChild(root, "DataTypeTemplates")
	ied := doc.InsertBefore(root, tpl, "IED")

	children := doc.Children(root)
	if len(children) != 2 || children[0] != ied || children[1] != tpl {
		t.Errorf("children = %v, want [%d %d]", children, ied, tpl)
	}
}

func TestGraft(t *testing.T) {
	doc := scl.NewSCLDocument()
	frag := scl.NewElement("IED", "name", "X", "desc", "").Append(
		scl.NewElement("AccessPoint", "name", "AP1").Append(scl.NewElement("Server")),
	)

	handles := doc.Graft(doc.Root(), scl.NoHandle, frag)
	if len(handles) != 3 {
		t.Fatalf("grafted %d elements, want 3", len(handles))
	}
	ied := handles[frag]
	if doc.Get(ied, "name") != "X" {
		t.Errorf("name = %q", doc.Get(ied, "name"))
	}
	if _, ok := doc.Attr(ied, "desc"); ok {
		t.Error("empty optional attribute should be skipped")
	}
	if got := doc.AccessPointsWithServer(ied); len(got) != 1 || got[0] != "AP1" {
		t.Errorf("AccessPointsWithServer() = %v", got)
	}
}

func TestQueries(t *testing.T) {
	doc := scltest.Sample(t)
	ied := doc.DeviceByName("IED1")

	if got := doc.AccessPointNames(ied); len(got) != 2 {
		t.Errorf("AccessPointNames() = %v", got)
	}
	if got := doc.AccessPointsWithServer(ied); len(got) != 1 || got[0] != "AP1" {
		t.Errorf("AccessPointsWithServer() = %v", got)
	}

	server := doc.FirstChild(doc.AccessPointByName(ied, "AP1"), scl.TagServer)
	if got := doc.LDeviceInsts(server); len(got) != 1 || got[0] != "LD1" {
		t.Errorf("LDeviceInsts() = %v", got)
	}
	ld := doc.LDeviceByInst(server, "LD1")
	if n := len(doc.LogicalNodes(ld)); n != 2 {
		t.Errorf("LogicalNodes() count = %d, want 2", n)
	}
	if n := len(doc.Descendants(ied, scl.TagVal)); n != 4 {
		t.Errorf("Val descendants = %d, want 4", n)
	}
}
