package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/skilltree/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.SkillLoader using an in-memory map.
type Loader struct {
	skills map[string][]byte
}

// NewLoader creates a new Loader with the provided raw documents (YAML or JSON).
func NewLoader(data map[string]string) *Loader {
	skills := make(map[string][]byte)
	for k, v := range data {
		skills[k] = []byte(v)
	}
	return &Loader{
		skills: skills,
	}
}

// NewFromSkills creates a new Loader from authoring documents.
// This handles serialization automatically, improving DX for tests.
func NewFromSkills(skills ...domain.RawSkill) (*Loader, error) {
	data := make(map[string][]byte)
	for _, s := range skills {
		if s.ID == "" {
			return nil, fmt.Errorf("skill missing ID")
		}
		bytes, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal skill %s: %w", s.ID, err)
		}
		data[s.ID] = bytes
	}
	return &Loader{skills: data}, nil
}

// Put adds or replaces a document.
func (l *Loader) Put(id string, content []byte) {
	l.skills[id] = content
}

// Delete removes a document.
func (l *Loader) Delete(id string) {
	delete(l.skills, id)
}

// GetSkill retrieves the raw document of a skill by ID.
func (l *Loader) GetSkill(id string) ([]byte, error) {
	content, ok := l.skills[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSkillNotFound, id)
	}
	return content, nil
}

// ListSkills returns all available skill IDs.
func (l *Loader) ListSkills() ([]string, error) {
	keys := make([]string, 0, len(l.skills))
	for k := range l.skills {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
