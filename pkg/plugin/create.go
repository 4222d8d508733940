package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scl-tools/iedit-go/pkg/edit"
	journal "github.com/scl-tools/iedit-go/pkg/log"
	"github.com/scl-tools/iedit-go/pkg/naming"
	"github.com/scl-tools/iedit-go/pkg/scl"
	"github.com/scl-tools/iedit-go/pkg/synth"
)

// Operation names used in journal events.
const (
	OpVirtualDevice = "virtual-device"
	OpAccessPoint   = "access-point"
	OpLogicalDevice = "logical-device"
	OpLogicalNodes  = "logical-nodes"
)

// CreateVirtualDevice validates name against the device rule and the
// existing device names, then builds the device skeleton. The new device is
// selected once the host hands back a snapshot containing it.
func (e *Engine) CreateVirtualDevice(name string) (edit.Batch, error) {
	if e.detached {
		return nil, ErrNotAttached
	}
	name = strings.TrimSpace(name)
	if r := naming.Validate(name, naming.DeviceRule, e.doc.DeviceNames()); !r.Valid() {
		err := &synth.ValidationError{Field: "device name", Value: name, Result: r, Rule: naming.DeviceRule}
		return nil, e.fail(OpVirtualDevice, name, err)
	}

	batch, err := e.Synthesizer().VirtualDevice(name)
	if err != nil {
		return nil, e.fail(OpVirtualDevice, name, err)
	}
	e.pendingSelect = name
	e.produced(OpVirtualDevice, name, batch)
	return batch, nil
}

// AddAccessPoint builds a new access point under device.
func (e *Engine) AddAccessPoint(device scl.Handle, req synth.AccessPointRequest) (edit.Batch, error) {
	if e.detached {
		return nil, ErrNotAttached
	}
	batch, err := e.Synthesizer().AccessPoint(device, req)
	if err != nil {
		return nil, e.fail(OpAccessPoint, e.deviceOf(device), err)
	}
	e.produced(OpAccessPoint, e.deviceOf(device), batch)
	return batch, nil
}

// ServerAtCandidates lists the access points of device that a new access
// point can reference.
func (e *Engine) ServerAtCandidates(device scl.Handle) []string {
	return e.Synthesizer().ServerAtCandidates(device)
}

// AddLogicalDevice builds a logical device with its root logical node.
func (e *Engine) AddLogicalDevice(server scl.Handle, inst string) (edit.Batch, error) {
	if e.detached {
		return nil, ErrNotAttached
	}
	batch, err := e.Synthesizer().LogicalDevice(server, inst)
	if err != nil {
		return nil, e.fail(OpLogicalDevice, e.deviceOf(server), err)
	}
	e.produced(OpLogicalDevice, e.deviceOf(server), batch)
	return batch, nil
}

// AddLogicalNodes builds logical nodes of one class under ldevice.
func (e *Engine) AddLogicalNodes(ldevice scl.Handle, req synth.LogicalNodeRequest) (edit.Batch, error) {
	if e.detached {
		return nil, ErrNotAttached
	}
	batch, err := e.Synthesizer().LogicalNodes(ldevice, req)
	if err != nil {
		return nil, e.fail(OpLogicalNodes, e.deviceOf(ldevice), err)
	}
	e.produced(OpLogicalNodes, e.deviceOf(ldevice), batch)
	return batch, nil
}

// Commit applies batch with the reference host implementation and binds the
// engine to the resulting snapshot. On failure the snapshot is unchanged.
func (e *Engine) Commit(op string, batch edit.Batch) error {
	if e.detached {
		return ErrNotAttached
	}
	doc, err := edit.Apply(e.doc, batch)
	if err != nil {
		return e.fail(op, "", fmt.Errorf("apply: %w", err))
	}
	e.Applied(op, batch, doc)
	return nil
}

// Applied records that the host applied batch and binds the engine to the
// resulting snapshot.
func (e *Engine) Applied(op string, batch edit.Batch, doc *scl.Document) {
	e.record(journal.Event{
		Category: journal.CategoryEdit,
		Device:   e.batchDevice(batch),
		Batch:    batchEvent(op, journal.BatchApplied, batch),
	})
	e.logger.Info("batch applied", "operation", op, "inserts", len(batch), "summary", batch.Summary())
	e.SetDocument(doc)
}

func (e *Engine) produced(op, device string, batch edit.Batch) {
	e.record(journal.Event{
		Category: journal.CategoryEdit,
		Device:   device,
		Batch:    batchEvent(op, journal.BatchProduced, batch),
	})
	e.logger.Debug("batch produced", "operation", op, "inserts", len(batch))
}

func (e *Engine) fail(op, device string, err error) error {
	data := &journal.ErrorEventData{Operation: op, Message: err.Error()}
	var verr *synth.ValidationError
	if errors.As(err, &verr) {
		data.Code = verr.Result.String()
	}
	e.record(journal.Event{Category: journal.CategoryError, Device: device, Error: data})
	e.logger.Debug("operation rejected", "operation", op, "error", err)
	return err
}

// deviceOf returns the name of the device h belongs to.
func (e *Engine) deviceOf(h scl.Handle) string {
	if e.doc.Tag(h) == scl.TagIED {
		return e.doc.Get(h, "name")
	}
	for _, a := range e.doc.Ancestors(h) {
		if e.doc.Tag(a) == scl.TagIED {
			return e.doc.Get(a, "name")
		}
	}
	return ""
}

func batchEvent(op string, phase journal.BatchPhase, batch edit.Batch) *journal.BatchEvent {
	ev := &journal.BatchEvent{
		Operation: op,
		Phase:     phase,
		Summary:   batch.Summary(),
		Inserts:   len(batch),
	}
	for _, tag := range []scl.Tag{scl.TagLNodeType, scl.TagDOType, scl.TagDAType, scl.TagEnumType} {
		for _, n := range batch.Nodes(tag) {
			if id, ok := n.Attr("id"); ok {
				ev.CreatedTypes = append(ev.CreatedTypes, id)
			}
		}
	}
	return ev
}

// batchDevice names the device a batch creates or extends. Parent handles
// refer to the snapshot the batch was produced against.
func (e *Engine) batchDevice(batch edit.Batch) string {
	for _, n := range batch.Nodes(scl.TagIED) {
		if name, ok := n.Attr("name"); ok {
			return name
		}
	}
	for _, ins := range batch {
		if h := ins.Parent.Handle(); h != scl.NoHandle {
			return e.deviceOf(h)
		}
	}
	return ""
}
