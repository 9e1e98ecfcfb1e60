package world

import (
	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

// Renderer owns render instances. The world asks for an instance whenever a
// non-empty voxel becomes visible and releases it when the voxel is hidden,
// removed or its chunk is disposed. Handles are opaque to the world.
type Renderer interface {
	Instance(pos ChunkPos, id block.ID, local LocalPos) voxel.Handle
	Release(pos ChunkPos, id block.ID, h voxel.Handle)
	// Dispose drops every instance of the chunk at once.
	Dispose(pos ChunkPos)
}

// NopRenderer hands out a constant handle and keeps no state.
type NopRenderer struct{}

func (NopRenderer) Instance(ChunkPos, block.ID, LocalPos) voxel.Handle { return 0 }
func (NopRenderer) Release(ChunkPos, block.ID, voxel.Handle)          {}
func (NopRenderer) Dispose(ChunkPos)                                  {}

// InstanceCounter tracks live instances per chunk.
type InstanceCounter struct {
	next voxel.Handle
	live map[ChunkPos]map[voxel.Handle]LocalPos
}

// NewInstanceCounter returns an empty counter.
func NewInstanceCounter() *InstanceCounter {
	return &InstanceCounter{live: make(map[ChunkPos]map[voxel.Handle]LocalPos)}
}

func (c *InstanceCounter) Instance(pos ChunkPos, _ block.ID, local LocalPos) voxel.Handle {
	m, ok := c.live[pos]
	if !ok {
		m = make(map[voxel.Handle]LocalPos)
		c.live[pos] = m
	}
	h := c.next
	c.next++
	m[h] = local
	return h
}

func (c *InstanceCounter) Release(pos ChunkPos, _ block.ID, h voxel.Handle) {
	delete(c.live[pos], h)
}

func (c *InstanceCounter) Dispose(pos ChunkPos) {
	delete(c.live, pos)
}

// Live returns the number of instances alive in chunk pos.
func (c *InstanceCounter) Live(pos ChunkPos) int { return len(c.live[pos]) }

// Total returns the number of instances alive across all chunks.
func (c *InstanceCounter) Total() int {
	n := 0
	for _, m := range c.live {
		n += len(m)
	}
	return n
}

// Has reports whether handle h is alive in chunk pos.
func (c *InstanceCounter) Has(pos ChunkPos, h voxel.Handle) bool {
	_, ok := c.live[pos][h]
	return ok
}
