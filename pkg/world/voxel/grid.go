package voxel

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
)

// ErrOutOfBounds is returned by callers that surface grid misses as errors.
var ErrOutOfBounds = errors.New("voxel: coordinates out of bounds")

// Handle is an opaque render-instance handle owned by the rendering collaborator.
type Handle int32

// NoHandle marks a voxel without a render instance.
const NoHandle Handle = -1

// Voxel is one cell of a grid.
type Voxel struct {
	ID     block.ID
	Handle Handle
}

// HasInstance reports whether the voxel is currently rendered.
func (v Voxel) HasInstance() bool { return v.Handle != NoHandle }

// IsEmpty reports whether the voxel holds the empty block.
func (v Voxel) IsEmpty() bool { return v.ID == block.Empty }

// Grid is a fixed width×height×width array of voxels.
// Index = (y*width + z)*width + x.
type Grid struct {
	width  int
	height int
	cells  []Voxel
}

// NewGrid allocates an empty grid. Dimensions never change afterwards.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("voxel: invalid grid dimensions %dx%d", width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Voxel, width*width*height),
	}
	g.Fill(block.Empty)
	return g, nil
}

// Width returns the horizontal size along both X and Z.
func (g *Grid) Width() int { return g.width }

// Height returns the vertical size.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y, z) lies inside the grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.width &&
		y >= 0 && y < g.height &&
		z >= 0 && z < g.width
}

func (g *Grid) index(x, y, z int) int {
	return (y*g.width+z)*g.width + x
}

// Get returns the voxel at (x, y, z). ok is false when the coordinates are out of bounds.
func (g *Grid) Get(x, y, z int) (v Voxel, ok bool) {
	if !g.InBounds(x, y, z) {
		return Voxel{ID: block.Empty, Handle: NoHandle}, false
	}
	return g.cells[g.index(x, y, z)], true
}

// BlockAt implements Source with chunk-local coordinates.
func (g *Grid) BlockAt(x, y, z int) (block.ID, bool) {
	v, ok := g.Get(x, y, z)
	return v.ID, ok
}

// SetID sets the block id at (x, y, z). Setting the empty block also drops the
// render handle. Out of bounds writes are ignored.
func (g *Grid) SetID(x, y, z int, id block.ID) {
	if !g.InBounds(x, y, z) {
		return
	}
	c := &g.cells[g.index(x, y, z)]
	c.ID = id
	if id == block.Empty {
		c.Handle = NoHandle
	}
}

// SetHandle stores the render handle at (x, y, z). Out of bounds writes are ignored.
func (g *Grid) SetHandle(x, y, z int, h Handle) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.cells[g.index(x, y, z)].Handle = h
}

// Fill resets every voxel to id without render handles.
func (g *Grid) Fill(id block.ID) {
	for i := range g.cells {
		g.cells[i] = Voxel{ID: id, Handle: NoHandle}
	}
}

// Each calls fn for every voxel in x, y, z order.
func (g *Grid) Each(fn func(x, y, z int, v Voxel)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			for z := 0; z < g.width; z++ {
				fn(x, y, z, g.cells[g.index(x, y, z)])
			}
		}
	}
}

// Count returns the number of voxels holding id.
func (g *Grid) Count(id block.ID) int {
	n := 0
	for _, c := range g.cells {
		if c.ID == id {
			n++
		}
	}
	return n
}

// Digest hashes the block ids of the grid. Render handles are not part of it,
// so two grids generated from the same inputs always share a digest.
func (g *Grid) Digest() uint64 {
	d := xxhash.New()
	var tmp [8]byte
	binary.LittleEndian.PutUint32(tmp[0:4], uint32(g.width))
	binary.LittleEndian.PutUint32(tmp[4:8], uint32(g.height))
	_, _ = d.Write(tmp[:])
	buf := make([]byte, 2*len(g.cells))
	for i, c := range g.cells {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(c.ID))
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}

// Equal reports whether both grids have the same dimensions and block ids.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i].ID != o.cells[i].ID {
			return false
		}
	}
	return true
}
