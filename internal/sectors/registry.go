package sectors

import (
	_ "embed"
	"fmt"

	"SaaSTracker/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed sectors.yaml
var defaultYAML []byte

// Registry is the static sector reference dataset in display order.
type Registry struct {
	order []string
	byID  map[string]model.Sector
}

type registryFile struct {
	Order   []string       `yaml:"order"`
	Sectors []model.Sector `yaml:"sectors"`
}

// Default returns the embedded registry. It panics only if the embedded
// file is malformed, which the package tests guard against.
func Default() *Registry {
	r, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("sectors: embedded registry: %v", err))
	}
	return r
}

// Parse builds a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	r := &Registry{byID: make(map[string]model.Sector, len(f.Sectors))}
	for _, s := range f.Sectors {
		if s.ID == "" {
			return nil, fmt.Errorf("sector without id")
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate sector %q", s.ID)
		}
		r.byID[s.ID] = s
	}
	for _, id := range f.Order {
		if _, ok := r.byID[id]; !ok {
			return nil, fmt.Errorf("order references unknown sector %q", id)
		}
	}
	if len(f.Order) != len(f.Sectors) {
		return nil, fmt.Errorf("order lists %d sectors, registry has %d", len(f.Order), len(f.Sectors))
	}
	r.order = f.Order
	return r, nil
}

// Order returns sector ids in display order.
func (r *Registry) Order() []string {
	return append([]string(nil), r.order...)
}

// Get looks up a sector by id.
func (r *Registry) Get(id string) (model.Sector, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// All returns the sectors in display order.
func (r *Registry) All() []model.Sector {
	out := make([]model.Sector, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Tracker returns the sectors of the tracker table and summary, in display order.
func (r *Registry) Tracker() []model.Sector {
	var out []model.Sector
	for _, s := range r.All() {
		if !s.IndexesOnly {
			out = append(out, s)
		}
	}
	return out
}

// Indexes returns the sectors of the valuation tab, in display order.
func (r *Registry) Indexes() []model.Sector {
	return r.All()
}

// Has reports whether id names a known sector.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}
