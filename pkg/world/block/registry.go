package block

import (
	"fmt"
	"sort"
)

// Registry is an immutable set of block types. It is built once and passed to
// every component that needs to resolve block ids.
type Registry struct {
	byID      map[ID]Type
	byName    map[string]ID
	all       []Type
	resources []Type
}

// NewRegistry builds a registry from types. Resources keep the order in which
// they are given; that order is the order veins are evaluated in.
func NewRegistry(types ...Type) (*Registry, error) {
	r := &Registry{
		byID:   make(map[ID]Type, len(types)),
		byName: make(map[string]ID, len(types)),
	}
	for _, t := range types {
		if t.Name == "" {
			return nil, fmt.Errorf("block %d: empty name", t.ID)
		}
		if _, ok := r.byID[t.ID]; ok {
			return nil, fmt.Errorf("block %d (%s): duplicate id", t.ID, t.Name)
		}
		if _, ok := r.byName[t.Name]; ok {
			return nil, fmt.Errorf("block %s: duplicate name", t.Name)
		}
		if t.Resource {
			if t.Scale.X() <= 0 || t.Scale.Y() <= 0 || t.Scale.Z() <= 0 {
				return nil, fmt.Errorf("resource %s: scale must be positive, got %v", t.Name, t.Scale)
			}
			if t.Scarcity < 0 || t.Scarcity > 1 {
				return nil, fmt.Errorf("resource %s: scarcity %v outside [0,1]", t.Name, t.Scarcity)
			}
			r.resources = append(r.resources, t)
		}
		r.byID[t.ID] = t
		r.byName[t.Name] = t.ID
		r.all = append(r.all, t)
	}
	if _, ok := r.byID[Empty]; !ok {
		return nil, fmt.Errorf("registry has no empty block (id %d)", Empty)
	}
	sort.Slice(r.all, func(i, j int) bool { return r.all[i].ID < r.all[j].ID })
	return r, nil
}

// ByID returns the block type with the given id.
func (r *Registry) ByID(id ID) (Type, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// ByName returns the block type with the given name.
func (r *Registry) ByName(name string) (Type, bool) {
	id, ok := r.byName[name]
	if !ok {
		return Type{}, false
	}
	return r.byID[id], true
}

// MustID returns the id registered under name and panics if there is none.
// Intended for wiring well-known blocks at construction time.
func (r *Registry) MustID(name string) ID {
	id, ok := r.byName[name]
	if !ok {
		panic(fmt.Sprintf("block: %q not registered", name))
	}
	return id
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns every block type ordered by id.
func (r *Registry) All() []Type {
	out := make([]Type, len(r.all))
	copy(out, r.all)
	return out
}

// Resources returns the resource subset in evaluation order.
func (r *Registry) Resources() []Type {
	out := make([]Type, len(r.resources))
	copy(out, r.resources)
	return out
}
