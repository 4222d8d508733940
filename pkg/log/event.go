package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// ErrInvalidEvent is returned for a decoded event whose category is unknown
// or whose payload belongs to another category.
var ErrInvalidEvent = errors.New("invalid journal event")

// Journal files are written by this package only, so decoding is strict:
// duplicate keys, indefinite lengths and tags are rejected.
var (
	encMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})
	decMode = mustDecMode(cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		TagsMd:      cbor.TagsForbidden,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("journal: cbor encoder options: %v", err))
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("journal: cbor decoder options: %v", err))
	}
	return m
}

// EncodeEvent encodes an event to CBOR.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes and checks a single CBOR event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if err := event.Validate(); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder returns a CBOR stream encoder for journal events.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR stream decoder for journal events. Decoded
// events are not checked; Reader checks each one.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// Event is one journal entry.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the engine session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Document names the edited document, if known.
	Document string `cbor:"4,keyasint,omitempty"`

	// Device is the device the event concerns, if any.
	Device string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Batch     *BatchEvent     `cbor:"10,keyasint,omitempty"`
	Focus     *FocusEvent     `cbor:"11,keyasint,omitempty"`
	Selection *SelectionEvent `cbor:"12,keyasint,omitempty"`
	Lifecycle *LifecycleEvent `cbor:"13,keyasint,omitempty"`
	Error     *ErrorEventData `cbor:"14,keyasint,omitempty"`
}

// Validate checks that the category is known and that every payload set
// belongs to it. Events without a payload are valid.
func (e Event) Validate() error {
	payloads := []struct {
		set      bool
		category Category
	}{
		{e.Batch != nil, CategoryEdit},
		{e.Focus != nil, CategoryFocus},
		{e.Selection != nil, CategorySelection},
		{e.Lifecycle != nil, CategoryLifecycle},
		{e.Error != nil, CategoryError},
	}
	if e.Category > CategoryError {
		return fmt.Errorf("%w: category %d", ErrInvalidEvent, e.Category)
	}
	for _, p := range payloads {
		if p.set && p.category != e.Category {
			return fmt.Errorf("%w: %s payload in %s event", ErrInvalidEvent, p.category, e.Category)
		}
	}
	return nil
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryEdit indicates an insert batch.
	CategoryEdit Category = 0
	// CategoryFocus indicates a focus path change.
	CategoryFocus Category = 1
	// CategorySelection indicates a device selection change.
	CategorySelection Category = 2
	// CategoryLifecycle indicates attach or detach.
	CategoryLifecycle Category = 3
	// CategoryError indicates a rejected operation.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryEdit:
		return "EDIT"
	case CategoryFocus:
		return "FOCUS"
	case CategorySelection:
		return "SELECTION"
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category with the given name.
func ParseCategory(name string) (Category, bool) {
	for c := CategoryEdit; c <= CategoryError; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// BatchEvent describes an insert batch.
type BatchEvent struct {
	// Operation names the synthesizer operation, e.g. "virtual-device".
	Operation string `cbor:"1,keyasint"`

	// Phase tells whether the batch was produced or applied by the host.
	Phase BatchPhase `cbor:"2,keyasint"`

	// Summary lists the inserted element names in order.
	Summary string `cbor:"3,keyasint,omitempty"`

	// Inserts is the number of insert operations.
	Inserts int `cbor:"4,keyasint"`

	// CreatedTypes lists the ids of new catalogue definitions.
	CreatedTypes []string `cbor:"5,keyasint,omitempty"`
}

// BatchPhase distinguishes produced from applied batches.
type BatchPhase uint8

const (
	// BatchProduced indicates the engine returned the batch.
	BatchProduced BatchPhase = 0
	// BatchApplied indicates the host applied the batch.
	BatchApplied BatchPhase = 1
)

// String returns the phase name.
func (p BatchPhase) String() string {
	switch p {
	case BatchProduced:
		return "PRODUCED"
	case BatchApplied:
		return "APPLIED"
	default:
		return "UNKNOWN"
	}
}

// FocusEvent captures the title path after focus or blur.
type FocusEvent struct {
	// Blur is set for blur transitions.
	Blur bool `cbor:"1,keyasint,omitempty"`

	// Path is the ancestor-then-self title list.
	Path []string `cbor:"2,keyasint"`
}

// SelectionEvent captures the selected devices and logical node classes.
type SelectionEvent struct {
	Devices   []string `cbor:"1,keyasint"`
	LNClasses []string `cbor:"2,keyasint,omitempty"`
}

// LifecycleEvent captures attach and detach.
type LifecycleEvent struct {
	// Phase is the lifecycle transition.
	Phase LifecyclePhase `cbor:"1,keyasint"`

	// Devices is the number of devices in the document.
	Devices int `cbor:"2,keyasint"`

	// RestoredSelection lists device names restored from plugin state
	// (attach only).
	RestoredSelection []string `cbor:"3,keyasint,omitempty"`
}

// LifecyclePhase indicates attach or detach.
type LifecyclePhase uint8

const (
	// LifecycleAttach indicates the engine was attached to a host.
	LifecycleAttach LifecyclePhase = 0
	// LifecycleDetach indicates the engine was detached.
	LifecycleDetach LifecyclePhase = 1
)

// String returns the phase name.
func (p LifecyclePhase) String() string {
	switch p {
	case LifecycleAttach:
		return "ATTACH"
	case LifecycleDetach:
		return "DETACH"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures a rejected operation.
type ErrorEventData struct {
	// Operation that failed.
	Operation string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the validation result name, if the failure was a validation.
	Code string `cbor:"3,keyasint,omitempty"`
}
