package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

// State is the lifecycle stage of a resident chunk. A chunk absent from the
// world is unloaded.
type State uint8

const (
	// StatePending chunks wait on the idle queue for generation.
	StatePending State = iota
	StateGenerating
	StateLoaded
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateGenerating:
		return "generating"
	case StateLoaded:
		return "loaded"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Chunk is one resident column of the world.
type Chunk struct {
	pos       ChunkPos
	grid      *voxel.Grid
	state     State
	instances int
}

// Loaded reports whether generation has completed. Queries against a chunk
// that is not loaded must be treated as "not yet available".
func (c *Chunk) Loaded() bool { return c.state == StateLoaded }

// ChunkView is a read-only summary of a resident chunk.
type ChunkView struct {
	Pos       ChunkPos
	Origin    mgl64.Vec3
	State     State
	Instances int
}

func (w *World) view(c *Chunk) ChunkView {
	return ChunkView{
		Pos:       c.pos,
		Origin:    c.pos.origin(w.cfg.Width),
		State:     c.state,
		Instances: c.instances,
	}
}

// buildInstances requests a render instance for every non-empty voxel that
// is not obscured inside its own chunk.
func (w *World) buildInstances(c *Chunk) {
	c.instances = 0
	c.grid.Each(func(x, y, z int, v voxel.Voxel) {
		if v.IsEmpty() || c.grid.IsObscured(x, y, z) {
			return
		}
		h := w.renderer.Instance(c.pos, v.ID, LocalPos{x, y, z})
		c.grid.SetHandle(x, y, z, h)
		c.instances++
	})
}

func (w *World) showVoxel(c *Chunk, l LocalPos, v voxel.Voxel) {
	if v.IsEmpty() || v.HasInstance() {
		return
	}
	h := w.renderer.Instance(c.pos, v.ID, l)
	c.grid.SetHandle(l.X, l.Y, l.Z, h)
	c.instances++
}

func (w *World) hideVoxel(c *Chunk, l LocalPos, v voxel.Voxel) {
	if !v.HasInstance() {
		return
	}
	w.renderer.Release(c.pos, v.ID, v.Handle)
	c.grid.SetHandle(l.X, l.Y, l.Z, voxel.NoHandle)
	c.instances--
}
