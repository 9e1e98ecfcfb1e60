// Package overlay stores player edits on top of procedurally generated terrain.
// Entries survive chunk unloads and are reapplied as the last generation step.
package overlay

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
)

type local struct {
	X, Y, Z int
}

// Store maps (chunk, local position) to a block id. An entry with the empty id
// records a removal and is distinct from "no entry".
//
// Store is not safe for concurrent use.
type Store struct {
	chunks map[ChunkKey]map[local]block.ID
	n      int
}

// New returns an empty store.
func New() *Store {
	return &Store{chunks: make(map[ChunkKey]map[local]block.ID)}
}

// Contains reports whether an edit is recorded at k.
func (s *Store) Contains(k Key) bool {
	_, ok := s.Get(k)
	return ok
}

// Get returns the recorded id at k.
func (s *Store) Get(k Key) (block.ID, bool) {
	c, ok := s.chunks[k.Chunk()]
	if !ok {
		return block.Empty, false
	}
	id, ok := c[local{k.X, k.Y, k.Z}]
	return id, ok
}

// Set records id at k, replacing any earlier entry. The zero Store is usable.
func (s *Store) Set(k Key, id block.ID) {
	if s.chunks == nil {
		s.chunks = make(map[ChunkKey]map[local]block.ID)
	}
	ck := k.Chunk()
	c, ok := s.chunks[ck]
	if !ok {
		c = make(map[local]block.ID)
		s.chunks[ck] = c
	}
	l := local{k.X, k.Y, k.Z}
	if _, exists := c[l]; !exists {
		s.n++
	}
	c[l] = id
}

// Delete drops the entry at k, if any.
func (s *Store) Delete(k Key) {
	ck := k.Chunk()
	c, ok := s.chunks[ck]
	if !ok {
		return
	}
	l := local{k.X, k.Y, k.Z}
	if _, exists := c[l]; !exists {
		return
	}
	delete(c, l)
	s.n--
	if len(c) == 0 {
		delete(s.chunks, ck)
	}
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.chunks = make(map[ChunkKey]map[local]block.ID)
	s.n = 0
}

// Len returns the number of recorded edits.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.n
}

// ChunkCount returns the number of chunks holding at least one edit.
func (s *Store) ChunkCount() int { return len(s.chunks) }

// ForChunk calls fn for every edit inside chunk (cx, cz). Iteration order is unspecified.
func (s *Store) ForChunk(cx, cz int, fn func(x, y, z int, id block.ID)) {
	for l, id := range s.chunks[ChunkKey{cx, cz}] {
		fn(l.X, l.Y, l.Z, id)
	}
}

// Range calls fn for every edit until fn returns false. Iteration order is unspecified.
func (s *Store) Range(fn func(k Key, id block.ID) bool) {
	for ck, c := range s.chunks {
		for l, id := range c {
			if !fn(Key{ck.X, ck.Z, l.X, l.Y, l.Z}, id) {
				return
			}
		}
	}
}

// Keys returns every key sorted by chunk then local coordinates.
func (s *Store) Keys() []Key {
	keys := make([]Key, 0, s.n)
	s.Range(func(k Key, _ block.ID) bool {
		keys = append(keys, k)
		return true
	})
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		switch {
		case a.ChunkX != b.ChunkX:
			return a.ChunkX < b.ChunkX
		case a.ChunkZ != b.ChunkZ:
			return a.ChunkZ < b.ChunkZ
		case a.X != b.X:
			return a.X < b.X
		case a.Y != b.Y:
			return a.Y < b.Y
		default:
			return a.Z < b.Z
		}
	})
	return keys
}

// Clone returns an independent copy. A nil store clones to an empty one.
func (s *Store) Clone() *Store {
	out := New()
	if s == nil {
		return out
	}
	s.Range(func(k Key, id block.ID) bool {
		out.Set(k, id)
		return true
	})
	return out
}

// MarshalJSON encodes the store as a flat {"cx-cz-x-y-z": id} object.
func (s *Store) MarshalJSON() ([]byte, error) {
	m := make(map[string]block.ID, s.n)
	s.Range(func(k Key, id block.ID) bool {
		m[k.String()] = id
		return true
	})
	return json.Marshal(m)
}

// UnmarshalJSON replaces the contents of s. On any malformed key the store is
// left untouched.
func (s *Store) UnmarshalJSON(data []byte) error {
	var m map[string]block.ID
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode overlay: %w", err)
	}
	next := New()
	for raw, id := range m {
		k, err := ParseKey(raw)
		if err != nil {
			return err
		}
		next.Set(k, id)
	}
	*s = *next
	return nil
}

// Validate checks every recorded id against reg.
func (s *Store) Validate(reg *block.Registry) error {
	var bad error
	s.Range(func(k Key, id block.ID) bool {
		if !reg.Has(id) {
			bad = fmt.Errorf("overlay entry %s: unknown block id %d", k, id)
			return false
		}
		return true
	})
	return bad
}
