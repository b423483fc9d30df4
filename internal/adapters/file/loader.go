// Package file loads skill documents from a directory tree.
package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// Extensions are the document extensions the loader reads, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.SkillLoader and ports.Watchable over a directory.
// A skill's ID is its slash-separated path relative to the root, without
// extension: skills/fire/bolt.yaml is "fire/bolt".
type Loader struct {
	root string
}

// New creates a loader rooted at dir.
func New(dir string) (*Loader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("skill directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("skill directory: %s is not a directory", abs)
	}
	return &Loader{root: abs}, nil
}

// Root returns the absolute root directory.
func (l *Loader) Root() string {
	return l.root
}

func isDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListSkills walks the root and returns every document ID, sorted.
func (l *Loader) ListSkills() ([]string, error) {
	seen := make(map[string]bool)
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDocument(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		seen[strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// GetSkill reads the document for id, trying each extension in order.
func (l *Loader) GetSkill(id string) ([]byte, error) {
	path, err := l.Path(id)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Path resolves the file backing id.
func (l *Loader) Path(id string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(id))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid skill id %q", id)
	}
	for _, ext := range Extensions {
		path := filepath.Join(l.root, clean+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrSkillNotFound, id)
}

// Watch signals on the returned channel whenever a document under the root is
// written, created, removed or renamed. The channel is closed when ctx ends.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.root, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = watcher.Add(ev.Name)
						continue
					}
				}
				if !isDocument(ev.Name) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}
