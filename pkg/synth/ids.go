package synth

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scl-tools/iedit-go/pkg/scl"
)

// IDSource mints candidate ids for new catalogue definitions. Candidates that
// collide with an existing definition are discarded and minted again.
type IDSource interface {
	NewID(kind scl.DefinitionKind, hint string) string
}

// IDSourceFunc adapts a function to IDSource.
type IDSourceFunc func(kind scl.DefinitionKind, hint string) string

// NewID calls f.
func (f IDSourceFunc) NewID(kind scl.DefinitionKind, hint string) string {
	return f(kind, hint)
}

// UUIDSource appends a short random suffix to the hint, e.g. "LLN0$3f2a9c1e".
type UUIDSource struct{}

// NewID returns hint plus the first eight hex digits of a random UUID.
func (UUIDSource) NewID(_ scl.DefinitionKind, hint string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return hint + "$" + suffix
}

const maxMintAttempts = 32

type minter struct {
	src   IDSource
	taken func(kind scl.DefinitionKind, id string) bool
	used  map[string]bool
}

func (m *minter) mint(kind scl.DefinitionKind, hint string) (string, error) {
	for range maxMintAttempts {
		id := m.src.NewID(kind, hint)
		if id == "" || m.used[id] || m.taken(kind, id) {
			continue
		}
		m.used[id] = true
		return id, nil
	}
	return "", ErrIDExhausted
}
