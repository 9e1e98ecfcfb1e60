package overlay

import (
	"fmt"
	"strconv"
	"strings"
)

// Key addresses one edited voxel: the chunk it belongs to and the local
// coordinates inside that chunk.
type Key struct {
	ChunkX, ChunkZ int
	X, Y, Z        int
}

// ChunkKey identifies a chunk column.
type ChunkKey struct {
	X, Z int
}

// Chunk returns the chunk part of the key.
func (k Key) Chunk() ChunkKey { return ChunkKey{X: k.ChunkX, Z: k.ChunkZ} }

// String encodes the key as "cx-cz-x-y-z".
func (k Key) String() string {
	return fmt.Sprintf("%d-%d-%d-%d-%d", k.ChunkX, k.ChunkZ, k.X, k.Y, k.Z)
}

// ParseKey decodes a key produced by Key.String. Components may be negative,
// so "-1--2-3-4-5" is chunk (-1,-2) local (3,4,5).
func ParseKey(s string) (Key, error) {
	var v [5]int
	rest := s
	for i := range v {
		if rest == "" {
			return Key{}, fmt.Errorf("overlay key %q: want 5 components, got %d", s, i)
		}
		end := 0
		if rest[0] == '-' {
			end = 1
		}
		digits := end
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
		if end == digits {
			return Key{}, fmt.Errorf("overlay key %q: component %d is not a number", s, i)
		}
		n, err := strconv.Atoi(rest[:end])
		if err != nil {
			return Key{}, fmt.Errorf("overlay key %q: %w", s, err)
		}
		v[i] = n
		rest = rest[end:]
		if i < len(v)-1 {
			if !strings.HasPrefix(rest, "-") {
				return Key{}, fmt.Errorf("overlay key %q: missing separator after component %d", s, i)
			}
			rest = rest[1:]
		}
	}
	if rest != "" {
		return Key{}, fmt.Errorf("overlay key %q: trailing data %q", s, rest)
	}
	return Key{ChunkX: v[0], ChunkZ: v[1], X: v[2], Y: v[3], Z: v[4]}, nil
}
