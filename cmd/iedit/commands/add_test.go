package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scl-tools/iedit-go/pkg/plugin"
	"github.com/scl-tools/iedit-go/pkg/scl"
	"github.com/scl-tools/iedit-go/pkg/synth"
)

func TestAddAccessPoint(t *testing.T) {
	eng := sampleEngine(t)

	batch, err := AddAccessPoint(eng, "IED1", synth.AccessPointRequest{Name: "AP3", ServerAt: "AP1"})
	require.NoError(t, err)
	require.NoError(t, eng.Commit(plugin.OpAccessPoint, batch))

	dev := eng.Document().DeviceByName("IED1")
	ap := eng.Document().AccessPointByName(dev, "AP3")
	require.NotEqual(t, scl.NoHandle, ap)
	sat := eng.Document().FirstChild(ap, scl.TagServerAt)
	require.NotEqual(t, scl.NoHandle, sat)
	assert.Equal(t, "AP1", eng.Document().Get(sat, "apName"))
}

func TestAddAccessPointUnknownDevice(t *testing.T) {
	eng := sampleEngine(t)
	_, err := AddAccessPoint(eng, "NOPE", synth.AccessPointRequest{Name: "AP3"})
	assert.Error(t, err)
}

func TestAddLogicalDevice(t *testing.T) {
	eng := sampleEngine(t)

	batch, err := AddLogicalDevice(eng, "IED1", "AP1", "LD2")
	require.NoError(t, err)
	require.NoError(t, eng.Commit(plugin.OpLogicalDevice, batch))

	doc := eng.Document()
	server := doc.FirstChild(doc.AccessPointByName(doc.DeviceByName("IED1"), "AP1"), scl.TagServer)
	assert.NotEqual(t, scl.NoHandle, doc.LDeviceByInst(server, "LD2"))

	_, err = AddLogicalDevice(eng, "IED1", "AP2", "LD3")
	assert.ErrorContains(t, err, "has no server")
}

func TestAddLogicalNodes(t *testing.T) {
	eng := sampleEngine(t)

	batch, err := AddLogicalNodes(eng, "IED1/AP1/LD1", synth.LogicalNodeRequest{LNType: "XCBR_T", Amount: 2})
	require.NoError(t, err)
	require.Len(t, batch, 2)
	inst, _ := batch[0].Node.Attr("inst")
	assert.Equal(t, "2", inst)
	inst, _ = batch[1].Node.Attr("inst")
	assert.Equal(t, "3", inst)

	var buf bytes.Buffer
	PrintBatch(&buf, batch)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1. LN inst=2 lnClass=XCBR (parent #"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "before none)"), lines[1])
}

func TestPrintBatchNestedDevice(t *testing.T) {
	eng := sampleEngine(t)
	batch, err := eng.CreateVirtualDevice("IED2")
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintBatch(&buf, batch)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "1. IED name=IED2 (parent #"), out)
	assert.NotContains(t, out, "before none")
}
