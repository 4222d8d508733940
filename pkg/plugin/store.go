package plugin

import "github.com/scl-tools/iedit-go/pkg/persistence"

// StateStore persists plugin state between sessions. It is satisfied by
// *persistence.FileStore and *persistence.MemoryStore.
type StateStore interface {
	// GetState returns the stored state, or nil when nothing was stored.
	GetState() (*persistence.PluginState, error)

	// SetState merges update into the stored state.
	SetState(update persistence.PluginState) error
}

// Compile-time checks.
var (
	_ StateStore = (*persistence.FileStore)(nil)
	_ StateStore = (*persistence.MemoryStore)(nil)
)
