package plugin_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scl-tools/iedit-go/internal/scltest"
	"github.com/scl-tools/iedit-go/pkg/edit"
	"github.com/scl-tools/iedit-go/pkg/focus"
	journal "github.com/scl-tools/iedit-go/pkg/log"
	"github.com/scl-tools/iedit-go/pkg/naming"
	"github.com/scl-tools/iedit-go/pkg/plugin"
	"github.com/scl-tools/iedit-go/pkg/scl"
	"github.com/scl-tools/iedit-go/pkg/synth"
)

func attachRecorded(t *testing.T, doc *scl.Document) (*plugin.Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	return plugin.OnAttach(doc, nil, plugin.Options{Journal: rec}), rec
}

func TestCreateVirtualDeviceValidation(t *testing.T) {
	eng, rec := attachRecorded(t, scltest.Sample(t))

	tests := []struct {
		name string
		want naming.Result
	}{
		{"", naming.Empty},
		{"IED 2", naming.InvalidCharacters},
		{"IED1", naming.Duplicate},
	}
	for _, tt := range tests {
		_, err := eng.CreateVirtualDevice(tt.name)
		require.ErrorIs(t, err, synth.ErrInvalidName, "name %q", tt.name)

		var verr *synth.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, tt.want, verr.Result, "name %q", tt.name)
	}

	errs := rec.byCategory(journal.CategoryError)
	require.Len(t, errs, 3)
	assert.Equal(t, plugin.OpVirtualDevice, errs[2].Error.Operation)
	assert.Equal(t, "DUPLICATE", errs[2].Error.Code)
}

func TestCreateVirtualDeviceSelectsNewDevice(t *testing.T) {
	eng, rec := attachRecorded(t, scltest.Sample(t))
	require.NoError(t, eng.Select("IED1"))
	require.NoError(t, eng.SetLNClassFilter("XCBR"))

	batch, err := eng.CreateVirtualDevice(" IED2 ")
	require.NoError(t, err)
	assert.Equal(t, "IED", batch.Summary(), "canonical root type is reused")
	assert.Equal(t, []string{"IED1"}, eng.Selected(), "selection waits for the applied snapshot")

	require.NoError(t, eng.Commit(plugin.OpVirtualDevice, batch))
	assert.Equal(t, []string{"IED2"}, eng.Selected())
	assert.Empty(t, eng.LNClassFilter())
	assert.Equal(t, []string{"LLN0"}, eng.LNClasses())

	dev := eng.Document().DeviceByName("IED2")
	require.NotEqual(t, scl.NoHandle, dev)
	assert.Equal(t, synth.DefaultManufacturer, eng.Document().Get(dev, "manufacturer"))

	edits := rec.byCategory(journal.CategoryEdit)
	require.Len(t, edits, 2)
	assert.Equal(t, journal.BatchProduced, edits[0].Batch.Phase)
	assert.Equal(t, journal.BatchApplied, edits[1].Batch.Phase)
	assert.Equal(t, "IED2", edits[1].Device)
}

func TestCreateVirtualDeviceCreatesRootType(t *testing.T) {
	doc := scltest.Parse(t, `<SCL><Header id="x"/></SCL>`)
	seq := 0
	rec := &recorder{}
	eng := plugin.OnAttach(doc, nil, plugin.Options{
		Journal: rec,
		Synth: synth.Options{IDs: synth.IDSourceFunc(func(_ scl.DefinitionKind, hint string) string {
			seq++
			return fmt.Sprintf("%s_%d", hint, seq)
		})},
	})

	batch, err := eng.CreateVirtualDevice("IED1")
	require.NoError(t, err)
	require.NoError(t, eng.Commit(plugin.OpVirtualDevice, batch))

	id, ok := synth.FindCanonicalRootType(eng.Document())
	require.True(t, ok)
	assert.Equal(t, "LLN0_1", id)

	produced := rec.byCategory(journal.CategoryEdit)[0]
	assert.Equal(t, []string{"LLN0_1", "ENS_Beh_2", "BehaviourModeKind_3"}, produced.Batch.CreatedTypes)

	// A second device reuses the type created by the first.
	batch, err = eng.CreateVirtualDevice("IED2")
	require.NoError(t, err)
	assert.Equal(t, "IED", batch.Summary())
}

func TestAddAccessPoint(t *testing.T) {
	eng, _ := attachRecorded(t, scltest.Sample(t))
	dev := eng.Document().DeviceByName("IED1")

	assert.Equal(t, []string{"AP1"}, eng.ServerAtCandidates(dev))

	_, err := eng.AddAccessPoint(dev, synth.AccessPointRequest{Name: "AP3", ServerAt: "AP2"})
	assert.ErrorIs(t, err, synth.ErrServerAtTarget)

	batch, err := eng.AddAccessPoint(dev, synth.AccessPointRequest{Name: "AP3", ServerAt: "AP1"})
	require.NoError(t, err)
	require.NoError(t, eng.Commit(plugin.OpAccessPoint, batch))

	doc := eng.Document()
	ap := doc.AccessPointByName(doc.DeviceByName("IED1"), "AP3")
	require.NotEqual(t, scl.NoHandle, ap)
	assert.Equal(t, "AP1", doc.Get(doc.FirstChild(ap, scl.TagServerAt), "apName"))
	assert.Equal(t, []string{"IED0"}, eng.Selected(), "an empty selection falls back to the first device after apply")
}

func TestAddLogicalDeviceAndNodes(t *testing.T) {
	eng, _ := attachRecorded(t, scltest.Sample(t))
	server := scltest.MustFind(t, eng.Document(), "IED1/AP1/Server")

	_, err := eng.AddLogicalDevice(server, "LD1")
	assert.ErrorIs(t, err, synth.ErrInvalidName)

	batch, err := eng.AddLogicalDevice(server, "CTRL")
	require.NoError(t, err)
	require.NoError(t, eng.Commit(plugin.OpLogicalDevice, batch))

	doc := eng.Document()
	ld := doc.LDeviceByInst(scltest.MustFind(t, doc, "IED1/AP1/Server"), "CTRL")
	require.NotEqual(t, scl.NoHandle, ld)

	_, err = eng.AddLogicalNodes(ld, synth.LogicalNodeRequest{LNType: "NOPE", Amount: 1})
	assert.ErrorIs(t, err, synth.ErrUnknownType)

	batch, err = eng.AddLogicalNodes(ld, synth.LogicalNodeRequest{LNType: "XCBR_T", Amount: 2})
	require.NoError(t, err)
	require.NoError(t, eng.Commit(plugin.OpLogicalNodes, batch))

	doc = eng.Document()
	ld = doc.LDeviceByInst(scltest.MustFind(t, doc, "IED1/AP1/Server"), "CTRL")
	assert.Len(t, doc.LogicalNodes(ld), 3)
}

func TestCommitFailureKeepsSnapshot(t *testing.T) {
	eng, rec := attachRecorded(t, scltest.Sample(t))
	before := eng.Document()

	bad := scl.NewElement("AccessPoint", "name", "X")
	err := eng.Commit("broken", []edit.Insert{{Parent: edit.Pending(bad), Node: scl.NewElement("ServerAt")}})
	require.Error(t, err)
	assert.Same(t, before, eng.Document())
	assert.Len(t, rec.byCategory(journal.CategoryError), 1)
}

func TestFocusForwarding(t *testing.T) {
	doc := scltest.Sample(t)
	eng, rec := attachRecorded(t, doc)

	var events []focus.Event
	eng.OnFocusChange(func(e focus.Event) { events = append(events, e) })

	path := eng.Focus(scltest.MustFind(t, doc, "IED1/AP1/Server/LD1/XCBR"))
	assert.Equal(t, []string{"IED1", "AP1", "Server", "LD1", "XCBR"}, path)
	assert.Equal(t, []string{"IED1", "AP1", "Server", "LD1"}, eng.Blur())
	assert.Equal(t, []string{"IED1", "AP1", "Server", "LD1"}, eng.FocusPath())

	require.Len(t, events, 2)
	assert.Equal(t, focus.EventBlur, events[1].Kind)

	journaled := rec.byCategory(journal.CategoryFocus)
	require.Len(t, journaled, 2)
	assert.Equal(t, "IED1", journaled[0].Device)
	assert.True(t, journaled[1].Focus.Blur)

	eng.FocusTitles([]string{"IED1", "Pos", "stVal"})
	assert.Equal(t, []string{"IED1", "Pos", "stVal"}, eng.FocusPath())
}
