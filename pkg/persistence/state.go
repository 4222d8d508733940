package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// PluginState is the persisted state of one plugin.
type PluginState struct {
	// SelectedDeviceNames lists the names of the selected devices.
	SelectedDeviceNames []string `json:"selectedDeviceNames"`
}

// Clone returns a deep copy.
func (p PluginState) Clone() PluginState {
	return PluginState{SelectedDeviceNames: slices.Clone(p.SelectedDeviceNames)}
}

// merge applies the non-nil fields of update.
func (p PluginState) merge(update PluginState) PluginState {
	if update.SelectedDeviceNames != nil {
		p.SelectedDeviceNames = slices.Clone(update.SelectedDeviceNames)
	}
	return p
}

// StateFile is the on-disk layout.
type StateFile struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Plugins holds the state of each plugin by key.
	Plugins map[string]PluginState `json:"plugins,omitempty"`
}

// FileStore keeps the state of one plugin in a shared JSON file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	plugin string
	now    func() time.Time
}

// NewFileStore creates a store for the plugin entry key in the file at path.
func NewFileStore(path, plugin string) *FileStore {
	return &FileStore{path: path, plugin: plugin, now: time.Now}
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}

// GetState returns the plugin's state.
// Returns nil, nil if the file or the plugin entry doesn't exist.
func (s *FileStore) GetState() (*PluginState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil || file == nil {
		return nil, err
	}
	state, ok := file.Plugins[s.plugin]
	if !ok {
		return nil, nil
	}
	state = state.Clone()
	return &state, nil
}

// SetState merges update into the plugin's entry and saves the file.
// Nil fields of update keep their stored value; entries of other plugins
// are preserved.
func (s *FileStore) SetState(update PluginState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}
	if file == nil {
		file = &StateFile{}
	}
	if file.Plugins == nil {
		file.Plugins = make(map[string]PluginState)
	}
	file.Plugins[s.plugin] = file.Plugins[s.plugin].merge(update)
	return s.save(file)
}

// Clear removes the plugin's entry.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil || file == nil {
		return err
	}
	if _, ok := file.Plugins[s.plugin]; !ok {
		return nil
	}
	delete(file.Plugins, s.plugin)
	return s.save(file)
}

func (s *FileStore) load() (*StateFile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file := &StateFile{}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *FileStore) save(file *StateFile) error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file.Version = StateVersion
	file.SavedAt = s.now()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// MemoryStore keeps plugin state in memory, for hosts without a state file.
type MemoryStore struct {
	mu    sync.Mutex
	state *PluginState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// GetState returns the stored state, or nil when nothing was set.
func (s *MemoryStore) GetState() (*PluginState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil, nil
	}
	state := s.state.Clone()
	return &state, nil
}

// SetState merges update into the stored state.
func (s *MemoryStore) SetState(update PluginState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current PluginState
	if s.state != nil {
		current = *s.state
	}
	merged := current.merge(update)
	s.state = &merged
	return nil
}
