// Package catalog holds the plant catalog served by the development plants API
// and its listing semantics (_sort, _order, _page, _limit).
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"plantmanager/internal/model"
)

//go:embed seed.yaml
var seedYAML []byte

// Catalog is an immutable set of environments and plants.
type Catalog struct {
	Environments []model.Environment `yaml:"environments"`
	Plants       []model.Plant       `yaml:"plants"`
}

// Query selects and pages catalog entries.
// A zero Limit returns everything; a zero Page is treated as 1.
type Query struct {
	Sort  string
	Desc  bool
	Page  int
	Limit int
}

// Seed returns the built-in catalog.
func Seed() (*Catalog, error) {
	return Parse(seedYAML)
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	keys := make(map[string]bool, len(c.Environments))
	for _, env := range c.Environments {
		if env.Key == model.AllEnvironmentsKey {
			return fmt.Errorf("environment key %q is reserved", env.Key)
		}
		if env.Key == "" {
			return fmt.Errorf("environment %q has no key", env.Title)
		}
		keys[env.Key] = true
	}

	ids := make(map[int64]bool, len(c.Plants))
	for _, p := range c.Plants {
		if ids[p.ID] {
			return fmt.Errorf("duplicate plant id %d", p.ID)
		}
		ids[p.ID] = true
		for _, env := range p.Environments {
			if !keys[env] {
				return fmt.Errorf("plant %d references unknown environment %q", p.ID, env)
			}
		}
	}
	return nil
}

// Plant returns the plant with the given id.
func (c *Catalog) Plant(id int64) (model.Plant, bool) {
	for _, p := range c.Plants {
		if p.ID == id {
			return p, true
		}
	}
	return model.Plant{}, false
}

// ListPlants returns plants matching q. Unknown sort keys are rejected.
func (c *Catalog) ListPlants(q Query) ([]model.Plant, error) {
	plants := slices.Clone(c.Plants)

	if q.Sort != "" {
		var cmp func(a, b model.Plant) int
		switch q.Sort {
		case "name":
			cmp = func(a, b model.Plant) int { return strings.Compare(a.Name, b.Name) }
		case "id":
			cmp = func(a, b model.Plant) int { return compareInt64(a.ID, b.ID) }
		default:
			return nil, fmt.Errorf("cannot sort plants by %q", q.Sort)
		}
		slices.SortStableFunc(plants, orderBy(cmp, q.Desc))
	}
	return paginate(plants, q.Page, q.Limit), nil
}

// ListEnvironments returns environments matching q.
func (c *Catalog) ListEnvironments(q Query) ([]model.Environment, error) {
	envs := slices.Clone(c.Environments)

	if q.Sort != "" {
		var cmp func(a, b model.Environment) int
		switch q.Sort {
		case "title":
			cmp = func(a, b model.Environment) int { return strings.Compare(a.Title, b.Title) }
		case "key":
			cmp = func(a, b model.Environment) int { return strings.Compare(a.Key, b.Key) }
		default:
			return nil, fmt.Errorf("cannot sort environments by %q", q.Sort)
		}
		slices.SortStableFunc(envs, orderBy(cmp, q.Desc))
	}
	return paginate(envs, q.Page, q.Limit), nil
}

func orderBy[T any](cmp func(a, b T) int, desc bool) func(a, b T) int {
	if !desc {
		return cmp
	}
	return func(a, b T) int { return cmp(b, a) }
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
