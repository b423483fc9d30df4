package testutils

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/skilltree/internal/compiler"
	"github.com/aretw0/skilltree/pkg/components"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/registry"
	"github.com/aretw0/skilltree/pkg/schema"
	"github.com/stretchr/testify/require"
)

// WriteFile writes content under dir, creating parent directories.
// name uses forward slashes.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// SetupSkillDir creates a temporary directory holding files and returns its
// absolute path. It fails the test immediately on error.
func SetupSkillDir(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		WriteFile(t, absPath, name, content)
	}
	return absPath
}

// Recorder is an effect source whose effects record every subject they hit.
// Every key resolves.
type Recorder struct {
	mu   sync.Mutex
	hits map[string][]string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{hits: make(map[string][]string)}
}

func (r *Recorder) record(key string) domain.EffectFunc {
	return func(_ *domain.Cast, subject domain.Entity, _ domain.Settings) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.hits[key] = append(r.hits[key], subject.ID())
		return nil
	}
}

// Effect implements components.EffectSource.
func (r *Recorder) Effect(key string) (domain.EffectFunc, schema.Schema, bool) {
	return r.record(key), nil, true
}

// Bind registers recording effects for keys in a registry.
func (r *Recorder) Bind(effects *registry.Effects, keys ...string) *registry.Effects {
	for _, k := range keys {
		effects.Register(k, r.record(k))
	}
	return effects
}

// Hits returns the subject IDs an effect was applied to, in order.
func (r *Recorder) Hits(key string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.hits[key]...)
}

// Compile compiles a document and fails the test on any load error.
func Compile(t *testing.T, effects components.EffectSource, doc string) *domain.Skill {
	t.Helper()
	c := compiler.New(components.NewCatalog(effects))
	skill, report := c.CompileBytes("", "test.yaml", []byte(doc))
	require.True(t, report.OK(), "errors: %v", report.Errors)
	return skill
}
