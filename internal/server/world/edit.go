package world

import (
	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
	"github.com/OCharnyshevich/voxel-world/pkg/world/overlay"
	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

// Block returns the voxel at world position (x, y, z). It fails with
// ErrMissingChunk, ErrChunkNotLoaded or voxel.ErrOutOfBounds (Y outside the
// chunk height).
func (w *World) Block(x, y, z int) (voxel.Voxel, error) {
	c, l, err := w.locate(x, y, z)
	if err != nil {
		return voxel.Voxel{Handle: voxel.NoHandle}, err
	}
	v, ok := c.grid.Get(l.X, l.Y, l.Z)
	if !ok {
		return v, voxel.ErrOutOfBounds
	}
	return v, nil
}

// GetBlock is Block with the failure reason dropped.
func (w *World) GetBlock(x, y, z int) (voxel.Voxel, bool) {
	v, err := w.Block(x, y, z)
	return v, err == nil
}

// BlockAt resolves block ids across chunk borders. Unknown positions report
// ok=false and count as empty for occlusion.
func (w *World) BlockAt(x, y, z int) (block.ID, bool) {
	v, ok := w.GetBlock(x, y, z)
	return v.ID, ok
}

// IsObscured reports whether all six neighbours of (x, y, z) are non-empty,
// looking into adjacent chunks.
func (w *World) IsObscured(x, y, z int) bool {
	return voxel.Obscured(w, x, y, z)
}

// VisibleSides returns the faces of (x, y, z) facing an empty or unknown voxel.
func (w *World) VisibleSides(x, y, z int) voxel.Sides {
	return voxel.VisibleSides(w, x, y, z)
}

// AddBlock places id at an empty voxel of a loaded chunk and records the
// edit. It reports whether anything changed: the empty id, unregistered ids,
// occupied voxels and unavailable chunks are no-ops.
func (w *World) AddBlock(x, y, z int, id block.ID) bool {
	if id == block.Empty || !w.reg.Has(id) {
		return false
	}
	c, l, err := w.locate(x, y, z)
	if err != nil {
		return false
	}
	v, ok := c.grid.Get(l.X, l.Y, l.Z)
	if !ok || !v.IsEmpty() {
		return false
	}

	c.grid.SetID(l.X, l.Y, l.Z, id)
	if !w.IsObscured(x, y, z) {
		w.showVoxel(c, l, voxel.Voxel{ID: id, Handle: voxel.NoHandle})
	}
	w.overlay.Set(overlayKey(c.pos, l), id)

	w.refreshNeighbours(x, y, z)
	return true
}

// RemoveBlock empties a non-empty voxel of a loaded chunk and records the
// removal. It reports whether anything changed.
func (w *World) RemoveBlock(x, y, z int) bool {
	c, l, err := w.locate(x, y, z)
	if err != nil {
		return false
	}
	v, ok := c.grid.Get(l.X, l.Y, l.Z)
	if !ok || v.IsEmpty() {
		return false
	}

	w.hideVoxel(c, l, v)
	c.grid.SetID(l.X, l.Y, l.Z, block.Empty)
	w.overlay.Set(overlayKey(c.pos, l), block.Empty)

	w.refreshNeighbours(x, y, z)
	return true
}

// refreshNeighbours re-evaluates the six voxels around (x, y, z): those now
// enclosed lose their instance, those now exposed gain one.
func (w *World) refreshNeighbours(x, y, z int) {
	for _, n := range voxel.Neighbours {
		nx, ny, nz := x+n.DX, y+n.DY, z+n.DZ
		c, l, err := w.locate(nx, ny, nz)
		if err != nil {
			continue
		}
		v, ok := c.grid.Get(l.X, l.Y, l.Z)
		if !ok || v.IsEmpty() {
			continue
		}
		if w.IsObscured(nx, ny, nz) {
			w.hideVoxel(c, l, v)
		} else {
			w.showVoxel(c, l, v)
		}
	}
}

// locate returns the loaded chunk owning (x, y, z) and the local position.
func (w *World) locate(x, y, z int) (*Chunk, LocalPos, error) {
	cp, l := w.WorldToChunkCoords(x, y, z)
	c, ok := w.chunks[cp]
	if !ok {
		return nil, l, ErrMissingChunk
	}
	if !c.Loaded() {
		return nil, l, ErrChunkNotLoaded
	}
	return c, l, nil
}

func overlayKey(p ChunkPos, l LocalPos) overlay.Key {
	return overlay.Key{ChunkX: p.X, ChunkZ: p.Z, X: l.X, Y: l.Y, Z: l.Z}
}
