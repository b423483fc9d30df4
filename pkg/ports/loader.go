package ports

import "context"

// SkillLoader defines how the engine retrieves skill documents.
// This allows the storage layer (filesystem, memory) to be decoupled.
type SkillLoader interface {
	// GetSkill retrieves the raw document of a skill by ID.
	// It returns the raw bytes (which the compiler will parse) or an error.
	GetSkill(id string) ([]byte, error)

	// ListSkills returns the IDs of every available skill document.
	ListSkills() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying documents change.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
