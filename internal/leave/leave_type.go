package leave

import (
	"fmt"
	"strings"

	"hris-core/internal/config"
)

// LeaveType is an immutable catalog entry.
type LeaveType struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MaxDaysPerYear int    `json:"max_days_per_year"`
	Color          string `json:"color"`
}

// Catalog is the ordered set of leave types the organization offers.
type Catalog struct {
	types []LeaveType
	byID  map[string]LeaveType
}

func NewCatalog(types []LeaveType) (Catalog, error) {
	c := Catalog{byID: make(map[string]LeaveType, len(types))}
	for _, t := range types {
		id := normalizeTypeID(t.ID)
		if id == "" {
			return Catalog{}, fmt.Errorf("leave type id is required")
		}
		if t.MaxDaysPerYear < 0 {
			return Catalog{}, fmt.Errorf("leave type %q: max_days_per_year must not be negative", id)
		}
		if _, dup := c.byID[id]; dup {
			return Catalog{}, fmt.Errorf("duplicate leave type %q", id)
		}
		t.ID = id
		c.types = append(c.types, t)
		c.byID[id] = t
	}
	return c, nil
}

func CatalogFromConfig(cfg config.LeaveConfig) (Catalog, error) {
	types := make([]LeaveType, len(cfg.Types))
	for i, t := range cfg.Types {
		types[i] = LeaveType{ID: t.ID, Name: t.Name, MaxDaysPerYear: t.MaxDaysPerYear, Color: t.Color}
	}
	return NewCatalog(types)
}

func (c Catalog) Lookup(id string) (LeaveType, bool) {
	t, ok := c.byID[normalizeTypeID(id)]
	return t, ok
}

func (c Catalog) All() []LeaveType {
	out := make([]LeaveType, len(c.types))
	copy(out, c.types)
	return out
}

func normalizeTypeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
