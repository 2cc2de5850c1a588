package monsters

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
)

// InMemoryRepository holds templates loaded from code or YAML
type InMemoryRepository struct {
	mu       sync.RWMutex
	monsters map[string]*Monster
}

// NewInMemoryRepository creates a repository seeded with templates
func NewInMemoryRepository(templates ...*Monster) *InMemoryRepository {
	r := &InMemoryRepository{monsters: make(map[string]*Monster)}
	for _, m := range templates {
		r.Put(m)
	}
	return r
}

// Put adds or replaces a template
func (r *InMemoryRepository) Put(m *Monster) {
	if m == nil || m.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.monsters[m.ID] = m.Clone()
}

// Get retrieves a template by ID
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Monster, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("monster ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.monsters[id]
	if !ok {
		return nil, dnderr.NotFoundf("monster with ID '%s' not found", id).
			WithMeta("monster_id", id)
	}
	return m.Clone(), nil
}

// IDs lists the known template IDs, sorted
func (r *InMemoryRepository) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.monsters))
	for id := range r.monsters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type monsterFile struct {
	Monsters []*Monster `yaml:"monsters"`
}

// LoadYAML reads a `monsters:` list into the repository
func (r *InMemoryRepository) LoadYAML(in io.Reader) (int, error) {
	var file monsterFile
	if err := yaml.NewDecoder(in).Decode(&file); err != nil {
		return 0, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to decode monster file")
	}

	for i, m := range file.Monsters {
		if m == nil || m.ID == "" {
			return 0, dnderr.InvalidArgumentf("monster %d has no id", i)
		}
	}
	for _, m := range file.Monsters {
		r.Put(m)
	}
	return len(file.Monsters), nil
}

// LoadFile opens path and loads it with LoadYAML
func LoadFile(path string) (*InMemoryRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open monster file: %w", err)
	}
	defer f.Close()

	r := NewInMemoryRepository()
	if _, err := r.LoadYAML(f); err != nil {
		return nil, err
	}
	return r, nil
}
