package ports

import "hyperstack/internal/types"

// ManifestPort loads and stores the project's selection state
// (hsm.yaml).
type ManifestPort interface {
	Load() (types.SelectionState, error)
	Save(state types.SelectionState) error
	Exists() bool
}
