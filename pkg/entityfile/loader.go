// Package entityfile reads and writes entity definitions stored as JSON or
// YAML documents, one entity per file.
package entityfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// ErrEmptyDocument is returned when a file holds only whitespace.
var ErrEmptyDocument = errors.New("entityfile: document is empty")

// Parse decodes an entity from JSON, falling back to YAML. The source names
// the origin in error messages.
func Parse(data []byte, source string) (model.Entity, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Entity{}, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var entity model.Entity
	if err := json.Unmarshal(data, &entity); err == nil {
		return entity, nil
	}

	entity = model.Entity{}
	if err := yaml.Unmarshal(data, &entity); err == nil {
		return entity, nil
	}

	return model.Entity{}, fmt.Errorf("entityfile: parse %s: invalid JSON or YAML", source)
}

// LoadFile reads and decodes a single entity file.
func LoadFile(path string) (model.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Entity{}, fmt.Errorf("entityfile: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Store holds the entities discovered by LoadFS keyed by name.
type Store struct {
	entities map[string]model.Entity
	sources  map[string]string
}

// LoadFS walks fsys and decodes every .json, .yaml and .yml file. Two files
// declaring the same entity name are rejected. A nil fsys yields an empty
// store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		entities: make(map[string]model.Entity),
		sources:  make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isEntityFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("entityfile: read %s: %w", path, err)
		}
		entity, err := Parse(data, path)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(entity.Name)
		if name == "" {
			return fmt.Errorf("entityfile: file %s defines an entity without a name", path)
		}
		if previous, exists := store.sources[name]; exists {
			return fmt.Errorf("entityfile: duplicate entity %q (files %s and %s)", name, previous, path)
		}
		store.entities[name] = entity
		store.sources[name] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Entity returns the entity registered under name.
func (s *Store) Entity(name string) (model.Entity, bool) {
	if s == nil {
		return model.Entity{}, false
	}
	entity, ok := s.entities[name]
	return entity, ok
}

// Source reports which file an entity was read from.
func (s *Store) Source(name string) string {
	if s == nil {
		return ""
	}
	return s.sources[name]
}

// Names returns the entity names in sorted order.
func (s *Store) Names() []string {
	if s == nil || len(s.entities) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.entities))
	for name := range s.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many entities the store holds.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entities)
}

func isEntityFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
